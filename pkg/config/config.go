package config

// this holds the resolved configuration values from CLI
var (
	DB                 string // connection string for the database
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	LogFilter          string // zapfilter rules applied to the logger
	MigrationSourceURL string // location of migration files
	EnableTelemetry    bool   // enable telemetry
	TelemetryEndpoint  string // endpoint for telemetry
	ProfilingPort      int    // port for profiling
	ServerAddr         string // listen addr for the HTTP server
	DateLocale         string // BCP-47 tag used for rendered dates
	TLSCertFile        string // file containing the TLS certificate
	TLSKeyFile         string // file containing the TLS private key
	TLSCAFile          string // file containing the TLS root CA
	TraefikCerts       string // traefik acme.json containing the certificates
	TraefikCertDomain  string // domain to pick from the traefik certificates
)
