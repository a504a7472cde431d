package authz

import "github.com/medstock/medstock-backend/pkg/enums"

// Action names a permission checked before a handler runs.
type Action string

const (
	ActionCatalogRead       Action = "catalog.read"
	ActionDashboardView     Action = "dashboard.view"
	ActionSupplierWrite     Action = "supplier.write"
	ActionCategoryWrite     Action = "category.write"
	ActionMedicineWrite     Action = "medicine.write"
	ActionMedicineOpname    Action = "medicine.opname"
	ActionTransactionCreate Action = "transaction.create"
	ActionTransactionManage Action = "transaction.manage"
	ActionOperatorManage    Action = "operator.manage"
)

var allActions = []Action{
	ActionCatalogRead,
	ActionDashboardView,
	ActionSupplierWrite,
	ActionCategoryWrite,
	ActionMedicineWrite,
	ActionMedicineOpname,
	ActionTransactionCreate,
	ActionTransactionManage,
	ActionOperatorManage,
}

// rolePolicy is the static capability table. Unknown roles get nothing.
var rolePolicy = map[enums.OperatorRole]map[Action]bool{
	enums.OperatorRoleAdmin: toSet(allActions...),
	enums.OperatorRoleOperator: toSet(
		ActionCatalogRead,
		ActionDashboardView,
		ActionSupplierWrite,
		ActionCategoryWrite,
		ActionMedicineWrite,
		ActionMedicineOpname,
		ActionTransactionCreate,
		ActionTransactionManage,
	),
	enums.OperatorRoleStakeholder: toSet(
		ActionDashboardView,
	),
	enums.OperatorRoleViewer: toSet(
		ActionCatalogRead,
		ActionDashboardView,
	),
}

// Allowed reports whether the role may perform the action.
func Allowed(role enums.OperatorRole, action Action) bool {
	caps, ok := rolePolicy[role]
	if !ok {
		return false
	}
	return caps[action]
}

func toSet(actions ...Action) map[Action]bool {
	set := make(map[Action]bool, len(actions))
	for _, a := range actions {
		set[a] = true
	}
	return set
}
