package booking

// Pipeline routes, in order.
const (
	RouteProfile   = "/booking/profile"
	RouteServices  = "/booking/services"
	RouteTime      = "/booking/time"
	RouteIdentify  = "/booking/identify"
	RouteOverview  = "/booking/overview"
	RouteConfirmed = "/booking/confirmed"
)
