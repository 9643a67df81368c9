package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyAgroLogDir   string = "AGRO_LOG_DIR"
	EnvKeyAgroLogLevel string = "AGRO_LOG_LEVEL"

	EnvKeyAgroStoreType string = "AGRO_STORE_TYPE"
	EnvKeyAgroDBType    string = "AGRO_DB_TYPE"
	EnvKeyAgroDbPath    string = "AGRO_DB_PATH"
	EnvKeyAgroMysqlDSN  string = "AGRO_MYSQL_DSN"

	EnvKeyAgroBackendURL     string = "AGRO_BACKEND_URL"
	EnvKeyAgroBackendAnonKey string = "AGRO_BACKEND_ANON_KEY"
	EnvKeyAgroBackendTimeout string = "AGRO_BACKEND_TIMEOUT"

	EnvKeyAgroAuthType      string = "AGRO_AUTH_TYPE"
	EnvKeyAgroJWTSecret     string = "AGRO_JWT_SECRET"
	EnvKeyAgroSessionTTL    string = "AGRO_SESSION_TTL"
	EnvKeyAgroSessionCookie string = "AGRO_SESSION_COOKIE"

	EnvKeyAgroCacheType  string = "AGRO_CACHE_TYPE"
	EnvKeyAgroRedisAddr  string = "AGRO_REDIS_ADDR"
	EnvKeyAgroRedisDB    string = "AGRO_REDIS_DB"
	EnvKeyAgroWeatherTTL string = "AGRO_WEATHER_TTL"

	EnvKeyAgroHttpHostPort string = "AGRO_HTTP_HOST_PORT"
	EnvKeyAgroGrpcHostPort string = "AGRO_GRPC_HOST_PORT"

	EnvKeyAgroDefaultRate  string = "AGRO_DEFAULT_RATE"
	EnvKeyAgroDefaultBurst string = "AGRO_DEFAULT_BURST"

	LoggerNameLoader        string = "loader"
	LoggerNameStore         string = "store"
	LoggerNameAuth          string = "auth"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameSeed          string = "seed"

	LoggerFieldCategory         string = "category"
	LoggerCategoryLanding       string = "landing"
	LoggerCategoryFarmerView    string = "farmer_view"
	LoggerCategoryOfficerPortal string = "officer_portal"
	LoggerCategoryCache         string = "cache"
	LoggerCategorySession       string = "session"

	// AlertsOnFarmerDashboard is how many of the most recent alerts a farmer sees.
	AlertsOnFarmerDashboard int = 10
)
