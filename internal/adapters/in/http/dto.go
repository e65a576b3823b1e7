package http

import "time"

// Error is the uniform error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddCartLineRequest adds one selection to the caller's cart.
type AddCartLineRequest struct {
	ProductID string  `json:"productId"`
	OptionID  *string `json:"optionId,omitempty"`
	Quantity  int     `json:"quantity"`
}

// CheckoutLineRequest selects one cart line for purchase.
type CheckoutLineRequest struct {
	ProductID string  `json:"productId"`
	OptionID  *string `json:"optionId,omitempty"`
}

// CheckoutRequest turns a selection of the caller's cart into per-store
// orders. Cart lines not listed stay in the cart.
type CheckoutRequest struct {
	Lines         []CheckoutLineRequest `json:"lines"`
	Address       string                `json:"address"`
	ReceiverName  string                `json:"receiverName"`
	ReceiverPhone string                `json:"receiverPhone"`
	DayLabel      string                `json:"dayLabel,omitempty"`
	TimeLabel     string                `json:"timeLabel,omitempty"`
}

// CheckoutOrderResponse is one order a checkout created.
type CheckoutOrderResponse struct {
	OrderID    string `json:"orderId"`
	StoreID    string `json:"storeId"`
	TotalPrice int64  `json:"totalPrice"`
}

// ChangeOrderStatusRequest moves an order to a new lifecycle status.
type ChangeOrderStatusRequest struct {
	Status string `json:"status"`
}

// ReassignOrderRequest hands an order to a different rider.
type ReassignOrderRequest struct {
	RiderID string `json:"riderId"`
}

// OrderResponse is one order row in a listing.
type OrderResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	StoreID     string     `json:"storeId"`
	Status      string     `json:"status"`
	TotalPrice  int64      `json:"totalPrice"`
	RiderID     *string    `json:"riderId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// AvailableOrderResponse is one claimable order in the ranked pool.
type AvailableOrderResponse struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"storeId"`
	TotalPrice int64     `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	DistanceKm *float64  `json:"distanceKm,omitempty"`
}

// CreateRiderRequest registers a rider.
type CreateRiderRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpdateRiderLocationRequest reports a rider's current position.
type UpdateRiderLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GenerateSettlementsRequest triggers settlement generation for a window.
type GenerateSettlementsRequest struct {
	WindowStart string `json:"windowStart"`
	WindowEnd   string `json:"windowEnd"`
}

// SettlementResponse is one settlement row.
type SettlementResponse struct {
	ID          string    `json:"id"`
	RiderID     string    `json:"riderId,omitempty"`
	WindowStart string    `json:"windowStart"`
	WindowEnd   string    `json:"windowEnd"`
	OrderCount  int       `json:"orderCount"`
	Commission  int64     `json:"commission"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
