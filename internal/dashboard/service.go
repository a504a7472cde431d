package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	pkgdb "github.com/medstock/medstock-backend/pkg/db"
	"github.com/medstock/medstock-backend/pkg/db/models"
	"github.com/medstock/medstock-backend/pkg/enums"
	pkgerrors "github.com/medstock/medstock-backend/pkg/errors"
	"github.com/medstock/medstock-backend/pkg/logger"
)

const nearExpiryWindow = 30 * 24 * time.Hour

// SupplierOverview counts medicines per supplier.
type SupplierOverview struct {
	Name          string `json:"name"`
	MedicineCount int    `json:"medicineCount"`
}

// CategoryDistribution counts medicines per category.
type CategoryDistribution struct {
	Name          string `json:"name"`
	MedicineCount int    `json:"medicineCount"`
}

// TransactionTrend is the summed transaction value for one calendar day.
type TransactionTrend struct {
	Date       string          `json:"date"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OperatorPerformance counts processed transactions per operator.
type OperatorPerformance struct {
	Name             string `json:"name"`
	TransactionCount int    `json:"transactionCount"`
}

// ExpiryBucket counts medicines grouped by days until expiry.
type ExpiryBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// NearExpiryMedicine names a medicine expiring within the warning window.
type NearExpiryMedicine struct {
	Name       string `json:"name"`
	ExpiryDate string `json:"expiryDate"`
}

// Payload is the single dashboard projection handed to clients.
type Payload struct {
	SupplierOverview     []SupplierOverview     `json:"supplierOverview"`
	CategoryDistribution []CategoryDistribution `json:"categoryDistribution"`
	TransactionTrends    []TransactionTrend     `json:"transactionTrends"`
	OperatorPerformance  []OperatorPerformance  `json:"operatorPerformance"`
	ExpiryAnalysis       []ExpiryBucket         `json:"expiryAnalysis"`
	PriceDistribution    []decimal.Decimal      `json:"priceDistribution"`
	MedicineNearExpiry   []NearExpiryMedicine   `json:"medicineNearExpiry"`
}

// Service builds the dashboard projections.
type Service struct {
	client *pkgdb.Client
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds the dashboard service.
func NewService(client *pkgdb.Client, logg *logger.Logger) *Service {
	return &Service{client: client, logg: logg, now: time.Now}
}

// Build assembles every projection in one pass. Reads are independent, so no
// transaction wraps them.
func (s *Service) Build(ctx context.Context) (*Payload, error) {
	conn := s.client.DB().WithContext(ctx)
	payload := &Payload{
		SupplierOverview:     []SupplierOverview{},
		CategoryDistribution: []CategoryDistribution{},
		TransactionTrends:    []TransactionTrend{},
		OperatorPerformance:  []OperatorPerformance{},
		ExpiryAnalysis:       []ExpiryBucket{},
		PriceDistribution:    []decimal.Decimal{},
		MedicineNearExpiry:   []NearExpiryMedicine{},
	}

	var suppliers []models.Supplier
	if err := conn.Preload("Medicines").Find(&suppliers).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suppliers")
	}
	for _, supplier := range suppliers {
		payload.SupplierOverview = append(payload.SupplierOverview, SupplierOverview{
			Name:          supplier.Name,
			MedicineCount: len(supplier.Medicines),
		})
	}

	var categories []models.Category
	if err := conn.Preload("Medicines").Find(&categories).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load categories")
	}
	for _, category := range categories {
		payload.CategoryDistribution = append(payload.CategoryDistribution, CategoryDistribution{
			Name:          category.Name,
			MedicineCount: len(category.Medicines),
		})
	}

	trends, err := s.transactionTrends(ctx)
	if err != nil {
		return nil, err
	}
	payload.TransactionTrends = trends

	performance, err := s.operatorPerformance(ctx)
	if err != nil {
		return nil, err
	}
	payload.OperatorPerformance = performance

	var medicines []models.Medicine
	if err := conn.Find(&medicines).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load medicines")
	}

	payload.ExpiryAnalysis = bucketByExpiry(medicines, s.now())
	for _, medicine := range medicines {
		payload.PriceDistribution = append(payload.PriceDistribution, medicine.Price)
	}

	deadline := s.now().Add(nearExpiryWindow)
	for _, medicine := range medicines {
		if !medicine.ExpiryDate.After(deadline) {
			payload.MedicineNearExpiry = append(payload.MedicineNearExpiry, NearExpiryMedicine{
				Name:       medicine.Name,
				ExpiryDate: medicine.ExpiryDate.UTC().Format("2006-01-02"),
			})
		}
	}

	return payload, nil
}

func (s *Service) transactionTrends(ctx context.Context) ([]TransactionTrend, error) {
	var transactions []models.StockTransaction
	if err := s.client.DB().WithContext(ctx).
		Select("created_at", "total_price").
		Order("created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transactions")
	}

	totals := map[string]decimal.Decimal{}
	order := []string{}
	for _, tx := range transactions {
		day := tx.CreatedAt.UTC().Format("2006-01-02")
		if _, seen := totals[day]; !seen {
			order = append(order, day)
		}
		totals[day] = totals[day].Add(tx.TotalPrice)
	}

	trends := make([]TransactionTrend, 0, len(order))
	for _, day := range order {
		trends = append(trends, TransactionTrend{Date: day, TotalPrice: totals[day]})
	}
	return trends, nil
}

func (s *Service) operatorPerformance(ctx context.Context) ([]OperatorPerformance, error) {
	type row struct {
		Name  string
		Count int
	}
	var rows []row
	if err := s.client.DB().WithContext(ctx).Raw(`
		SELECT o.name AS name, COUNT(t.id) AS count
		FROM operators o
		LEFT JOIN stock_transactions t ON t.operator_id = o.id
		WHERE o.role = ?
		GROUP BY o.id, o.name
		ORDER BY o.name
	`, enums.OperatorRoleOperator.String()).Scan(&rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load operator performance")
	}

	performance := make([]OperatorPerformance, 0, len(rows))
	for _, r := range rows {
		performance = append(performance, OperatorPerformance{
			Name:             firstName(r.Name),
			TransactionCount: r.Count,
		})
	}
	return performance, nil
}

var expiryRanges = []struct {
	label string
	min   int
	max   int
}{
	{"1-5", 1, 5},
	{"6-10", 6, 10},
	{"11-15", 11, 15},
	{"16-20", 16, 20},
	{"21-25", 21, 25},
	{"26-30", 26, 30},
}

func bucketByExpiry(medicines []models.Medicine, now time.Time) []ExpiryBucket {
	counts := map[string]int{}
	for _, medicine := range medicines {
		days := daysUntil(medicine.ExpiryDate, now)
		switch {
		case days > 30:
			counts[">30"]++
		case days >= 1:
			for _, r := range expiryRanges {
				if days >= r.min && days <= r.max {
					counts[r.label]++
					break
				}
			}
		}
		// Already-expired medicines fall out of every bucket.
	}

	buckets := []ExpiryBucket{}
	for _, r := range expiryRanges {
		if count, ok := counts[r.label]; ok {
			buckets = append(buckets, ExpiryBucket{Range: r.label, Count: count})
		}
	}
	if count, ok := counts[">30"]; ok {
		buckets = append(buckets, ExpiryBucket{Range: ">30", Count: count})
	}
	return buckets
}

func daysUntil(expiry, now time.Time) int {
	diff := expiry.Sub(now)
	days := int(diff.Hours() / 24)
	if diff > 0 && diff.Hours() > float64(days)*24 {
		days++
	}
	return days
}

func firstName(full string) string {
	for i, r := range full {
		if r == ' ' {
			return full[:i]
		}
	}
	return full
}
