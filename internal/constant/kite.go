package constant

const (
	ProductionEnvironment = "production"
)

const (
	// Kite web API paths, relative to kite.base_url.
	KiteLoginPath        = "/api/login"
	KiteTwoFAPath        = "/api/twofa"
	KiteRegularOrderPath = "/oms/orders/regular"
	KiteDashboardPath    = "/dashboard"

	// EnctokenCookieName is the session cookie Kite sets after a successful 2FA.
	EnctokenCookieName = "enctoken"

	// OrderVariety tags every submission; this tool only places regular orders.
	OrderVariety = "regular"

	TwoFATypeTOTP = "totp"
	LoginTypeUser = "user_id"
)

const (
	// KiteUserAgent mirrors a desktop browser; the web API rejects bare clients.
	KiteUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"
)
