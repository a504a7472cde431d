package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "MEDSTOCK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "MEDSTOCK_DB_DSN"
	EnvDBHost = "MEDSTOCK_DB_HOST"
	EnvDBUser = "MEDSTOCK_DB_USER"
	EnvDBName = "MEDSTOCK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
