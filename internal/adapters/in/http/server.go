// Package http exposes the marketplace use cases over a JSON API. It
// coordinates between HTTP handlers and application use cases; all business
// rules live below it.
package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/settlement"

	"github.com/labstack/echo/v4"
)

const windowDateLayout = "2006-01-02"

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	// Command handlers
	addCartLineHandler         commands.AddCartLineCommandHandler
	checkoutHandler            commands.CheckoutCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	assignOrderHandler         commands.AssignOrderCommandHandler
	reassignOrderHandler       commands.ReassignOrderCommandHandler
	createRiderHandler         commands.CreateRiderCommandHandler
	updateRiderLocationHandler commands.UpdateRiderLocationCommandHandler
	generateSettlementsHandler commands.GenerateSettlementsCommandHandler
	markSettlementPaidHandler  commands.MarkSettlementPaidCommandHandler

	// Query handlers
	listOrdersHandler       queries.ListOrdersQueryHandler
	availableOrdersHandler  queries.AvailableOrdersQueryHandler
	riderSettlementsHandler queries.RiderSettlementsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	addCartLineHandler commands.AddCartLineCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	reassignOrderHandler commands.ReassignOrderCommandHandler,
	createRiderHandler commands.CreateRiderCommandHandler,
	updateRiderLocationHandler commands.UpdateRiderLocationCommandHandler,
	generateSettlementsHandler commands.GenerateSettlementsCommandHandler,
	markSettlementPaidHandler commands.MarkSettlementPaidCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	availableOrdersHandler queries.AvailableOrdersQueryHandler,
	riderSettlementsHandler queries.RiderSettlementsQueryHandler,
) *Server {
	return &Server{
		addCartLineHandler:         addCartLineHandler,
		checkoutHandler:            checkoutHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		assignOrderHandler:         assignOrderHandler,
		reassignOrderHandler:       reassignOrderHandler,
		createRiderHandler:         createRiderHandler,
		updateRiderLocationHandler: updateRiderLocationHandler,
		generateSettlementsHandler: generateSettlementsHandler,
		markSettlementPaidHandler:  markSettlementPaidHandler,
		listOrdersHandler:          listOrdersHandler,
		availableOrdersHandler:     availableOrdersHandler,
		riderSettlementsHandler:    riderSettlementsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/cart/lines", s.AddCartLine)
	api.POST("/checkout", s.Checkout)

	api.GET("/orders", s.ListOrders)
	api.GET("/orders/available", s.GetAvailableOrders)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/assign", s.AssignOrder)
	api.POST("/orders/:id/reassign", s.ReassignOrder)

	api.POST("/riders", s.CreateRider)
	api.PUT("/riders/:id/location", s.UpdateRiderLocation)
	api.GET("/riders/:id/settlements", s.GetRiderSettlements)

	api.POST("/settlements/generate", s.GenerateSettlements)
	api.POST("/settlements/:id/pay", s.MarkSettlementPaid)
}

// AddCartLine handles POST /api/v1/cart/lines - adds a selection to the
// caller's cart.
func (s *Server) AddCartLine(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req AddCartLineRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid product id")
	}

	var optionID *kernel.UUID
	if req.OptionID != nil {
		oID, optionErr := kernel.UUIDFromString(*req.OptionID)
		if optionErr != nil {
			return respondBadRequest(ctx, "Invalid option id")
		}
		optionID = &oID
	}

	line, err := cart.NewLine(productID, optionID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddCartLineCommand(actor.ID(), line)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.addCartLineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/checkout - turns the selected cart lines
// into one pending order per store. Unselected lines stay in the cart.
func (s *Server) Checkout(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	selection := make([]cart.Selection, 0, len(req.Lines))
	for _, selected := range req.Lines {
		productID, idErr := kernel.UUIDFromString(selected.ProductID)
		if idErr != nil {
			return respondBadRequest(ctx, "Invalid product id")
		}

		var optionID *kernel.UUID
		if selected.OptionID != nil {
			oID, optionErr := kernel.UUIDFromString(*selected.OptionID)
			if optionErr != nil {
				return respondBadRequest(ctx, "Invalid option id")
			}
			optionID = &oID
		}

		line, selErr := cart.NewSelection(productID, optionID)
		if selErr != nil {
			return respondError(ctx, selErr)
		}
		selection = append(selection, line)
	}

	destination, err := order.NewDestination(
		req.Address, req.ReceiverName, req.ReceiverPhone, req.DayLabel, req.TimeLabel)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(actor.ID(), selection, destination)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]CheckoutOrderResponse, 0, len(created))
	for _, row := range created {
		resp = append(resp, CheckoutOrderResponse{
			OrderID:    row.OrderID.String(),
			StoreID:    row.StoreID.String(),
			TotalPrice: row.TotalPrice,
		})
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// ListOrders handles GET /api/v1/orders - lists orders scoped to the caller's
// role. Managers must scope to one store with ?storeId=; admins may.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	var storeID *kernel.UUID
	if raw := ctx.QueryParam("storeId"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return respondBadRequest(ctx, "Invalid store id")
		}
		storeID = &id
	}

	query, err := queries.NewListOrdersQuery(actor, storeID)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, row := range orders {
		item := OrderResponse{
			ID:          row.ID.String(),
			UserID:      row.UserID.String(),
			StoreID:     row.StoreID.String(),
			Status:      row.Status.String(),
			TotalPrice:  row.TotalPrice,
			CreatedAt:   row.CreatedAt,
			CompletedAt: row.CompletedAt,
		}
		if row.RiderID != nil {
			raw := row.RiderID.String()
			item.RiderID = &raw
		}
		resp = append(resp, item)
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetAvailableOrders handles GET /api/v1/orders/available - the claimable
// pool for the calling rider, nearest store first.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	if !actor.Is(kernel.RoleRider) {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "Only riders can browse available orders",
		})
	}

	query, err := queries.NewAvailableOrdersQuery(actor.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	pool, err := s.availableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]AvailableOrderResponse, 0, len(pool))
	for _, row := range pool {
		resp = append(resp, AvailableOrderResponse{
			ID:         row.ID.String(),
			StoreID:    row.StoreID.String(),
			TotalPrice: row.TotalPrice,
			CreatedAt:  row.CreatedAt,
			DistanceKm: row.DistanceKm,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - applies a
// role-guarded lifecycle transition.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id")
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignOrder handles POST /api/v1/orders/:id/assign - the calling rider
// claims the order exclusively.
func (s *Server) AssignOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignOrder handles POST /api/v1/orders/:id/reassign - a manager hands
// the order to a different rider.
func (s *Server) ReassignOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid order id")
	}

	var req ReassignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid rider id")
	}

	cmd, err := commands.NewReassignOrderCommand(orderID, riderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.reassignOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateRider handles POST /api/v1/riders - registers a rider.
func (s *Server) CreateRider(ctx echo.Context) error {
	var req CreateRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.ID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid rider id")
	}

	cmd, err := commands.NewCreateRiderCommand(riderID, req.Name)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateRiderLocation handles PUT /api/v1/riders/:id/location - records the
// rider's current position for proximity ranking.
func (s *Server) UpdateRiderLocation(ctx echo.Context) error {
	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid rider id")
	}

	var req UpdateRiderLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewGeoPoint(req.Lat, req.Lng)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateRiderLocationCommand(riderID, location)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateRiderLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRiderSettlements handles GET /api/v1/riders/:id/settlements - a rider's
// settlement history, newest window first. Riders see their own history;
// managers and admins anyone's.
func (s *Server) GetRiderSettlements(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	riderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid rider id")
	}

	if actor.Is(kernel.RoleRider) && !actor.ID().IsEqual(riderID) {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "Riders can only view their own settlements",
		})
	}

	query, err := queries.NewRiderSettlementsQuery(riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	settlements, err := s.riderSettlementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]SettlementResponse, 0, len(settlements))
	for _, row := range settlements {
		resp = append(resp, SettlementResponse{
			ID:          row.ID.String(),
			RiderID:     riderID.String(),
			WindowStart: row.WindowStart.Format(windowDateLayout),
			WindowEnd:   row.WindowEnd.Format(windowDateLayout),
			OrderCount:  row.OrderCount,
			Commission:  row.Commission,
			Status:      row.Status.String(),
			CreatedAt:   row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GenerateSettlements handles POST /api/v1/settlements/generate - manually
// regenerates settlements for a window. Admins only.
func (s *Server) GenerateSettlements(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}
	if !actor.Is(kernel.RoleAdmin) {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "Only admins can generate settlements",
		})
	}

	var req GenerateSettlementsRequest
	if err = ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	start, err := time.Parse(windowDateLayout, req.WindowStart)
	if err != nil {
		return respondBadRequest(ctx, "Invalid window start, expected YYYY-MM-DD")
	}
	end, err := time.Parse(windowDateLayout, req.WindowEnd)
	if err != nil {
		return respondBadRequest(ctx, "Invalid window end, expected YYYY-MM-DD")
	}

	window, err := settlement.NewWindow(start, end)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewGenerateSettlementsCommand(window)
	if err != nil {
		return respondError(ctx, err)
	}

	settlements, err := s.generateSettlementsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := make([]SettlementResponse, 0, len(settlements))
	for _, generated := range settlements {
		resp = append(resp, SettlementResponse{
			ID:          generated.ID().String(),
			RiderID:     generated.RiderID().String(),
			WindowStart: generated.Window().Start().Format(windowDateLayout),
			WindowEnd:   generated.Window().End().Format(windowDateLayout),
			OrderCount:  generated.OrderCount(),
			Commission:  generated.Commission(),
			Status:      generated.Status().String(),
			CreatedAt:   generated.CreatedAt(),
		})
	}

	return ctx.JSON(http.StatusCreated, resp)
}

// MarkSettlementPaid handles POST /api/v1/settlements/:id/pay - records a
// completed payout.
func (s *Server) MarkSettlementPaid(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return err
	}

	settlementID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid settlement id")
	}

	cmd, err := commands.NewMarkSettlementPaidCommand(settlementID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markSettlementPaidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
