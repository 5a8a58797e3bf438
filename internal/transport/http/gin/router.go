package httpgin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tablebook/internal/domain"
	redisrepo "tablebook/internal/repository/redis"
	"tablebook/internal/service"
	"tablebook/internal/service/auth"
	"tablebook/internal/service/availability"
	"tablebook/internal/service/booking"
	"tablebook/internal/service/menu"
	"tablebook/internal/service/orders"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))

	r.GET("/menu", handleMenuCatalog(svcs))
	r.GET("/bookings/available-times", handleAvailableTimes(svcs))

	r.POST("/booking", OptionalAuth(svcs.Auth), handleCreateBooking(svcs, idem, limiter))

	// Operator API
	adm := r.Group("/admin", JWTAuth(svcs.Auth), RequireRole(domain.RoleAdmin))
	{
		adm.GET("/bookings/today", handleListBookings(svcs.Booking.ListToday))
		adm.GET("/bookings/upcoming", handleListBookings(svcs.Booking.ListUpcoming))
		adm.GET("/bookings/past", handleListBookings(svcs.Booking.ListPast))
		adm.PUT("/bookings/:id/confirm", handleConfirmBooking(svcs))
		adm.PUT("/bookings/:id/cancel", handleCancelBooking(svcs))

		adm.GET("/floor", handleFloor(svcs))

		adm.POST("/orders", handleCreateSale(svcs))
		adm.POST("/orders/:id/complete", handleCompleteSale(svcs))
		adm.POST("/orders/:id/cancel", handleCancelSale(svcs))

		adm.GET("/pending-orders", handleListPending(svcs))
		adm.POST("/pending-orders", handleSavePending(svcs))
		adm.POST("/pending-orders/:id/finalize", handleFinalizePending(svcs))
		adm.DELETE("/pending-orders/:id", handleDestroyPending(svcs))

		adm.POST("/menu/categories", handleCreateCategory(svcs))
		adm.PUT("/menu/categories/:id", handleUpdateCategory(svcs))
		adm.DELETE("/menu/categories/:id", handleDeleteCategory(svcs))
		adm.POST("/menu", handleCreateMenuItem(svcs))
		adm.PUT("/menu/:id", handleUpdateMenuItem(svcs))
		adm.DELETE("/menu/:id", handleDeleteMenuItem(svcs))
	}

	// Customer API
	cust := r.Group("/customer", JWTAuth(svcs.Auth))
	{
		cust.GET("/reservations", handleMyReservations(svcs))
		cust.PUT("/reservations/:id/cancel", handleCancelBooking(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Register account
// @Param    req body RegisterRequest true "payload"
// @Success  201 {object} UserResponse
// @Failure  409 {object} ErrorResponse "email taken"
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		u, err := svcs.Auth.Register(c.Request.Context(), auth.RegisterParams{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, toUserResponse(u))
	}
}

// @Summary  Log in
// @Param    req body LoginRequest true "payload"
// @Success  200 {object} TokenResponse
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		token, u, err := svcs.Auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, TokenResponse{Token: token, User: toUserResponse(u)})
	}
}

// @Summary  Menu catalog
// @Success  200 {array} MenuCategoryResponse
// @Router   /menu [get]
func handleMenuCatalog(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svcs.Menu.Catalog(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, toCatalogResponse(cats), "public, max-age=60", true)
	}
}

// @Summary  Available booking times
// @Param    date     query string true  "YYYY-MM-DD"
// @Param    table_id query int    false "restrict to one table"
// @Success  200 {object} AvailableTimesResponse
// @Failure  400 {object} ErrorResponse "missing or past date"
// @Failure  404 {object} ErrorResponse "table not found"
// @Router   /bookings/available-times [get]
func handleAvailableTimes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := parseDate(c.Query("date"))
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}

		if date.Before(svcs.Availability.Today()) {
			badRequest(c, "date is in the past")
			return
		}

		var tableID int64
		if s := c.Query("table_id"); s != "" {
			tableID, err = strconv.ParseInt(s, 10, 64)
			if err != nil {
				badRequest(c, "invalid table_id")
				return
			}
		}

		times, err := svcs.Availability.AvailableTimes(c.Request.Context(), date, tableID)
		if err != nil {
			respondErr(c, err)
			return
		}

		// Cached by date, so this does not rehit the ledger.
		booked, err := svcs.Availability.BookedTimes(c.Request.Context(), date)
		if err != nil {
			respondErr(c, err)
			return
		}

		resp := AvailableTimesResponse{
			Date:    date.Format(time.DateOnly),
			TableID: tableID,
			Times:   times,
			Booked:  booked,
		}

		// ETag + Cache-Control 15s, availability goes stale fast
		writeJSONWithCache(c, http.StatusOK, resp, "public, max-age=15", true)
	}
}

// @Summary  Create booking (idempotent)
// @Param    req body CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} BookingResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "slot taken / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /booking [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.SlidingWindowLimiter,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}

		if limiter != nil {
			allowed, _, retryAfter, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
			if err == nil && !allowed {
				c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		p := booking.CreateParams{
			TableID:     req.TableID,
			Date:        date,
			Slot:        req.Time,
			Firstname:   req.Firstname,
			Lastname:    req.Lastname,
			Address:     req.Address,
			PhoneNumber: req.PhoneNumber,
		}

		if userID, ok := currentUserID(c); ok {
			p.UserID = &userID
		}

		for _, it := range req.Items {
			p.Items = append(p.Items, booking.CreateItem{MenuID: it.MenuID, Quantity: it.Quantity})
		}

		b, err := svcs.Booking.Create(c.Request.Context(), p)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := toBookingResponse(b)

		if idemStorageKey != "" && idem != nil {
			payload, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(payload))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  List bookings
// @Success  200 {array} BookingResponse
// @Router   /admin/bookings/today [get]
func handleListBookings(
	list func(ctx context.Context) ([]domain.BookingWithDetails, error),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := list(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toBookingResponses(out))
	}
}

// @Summary  Confirm booking
// @Param    id path int true "Booking ID"
// @Success  200 {object} BookingResponse
// @Failure  409 {object} ErrorResponse "already confirmed or cancelled"
// @Router   /admin/bookings/{id}/confirm [put]
func handleConfirmBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		b, err := svcs.Booking.Confirm(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": b.ID, "status": bookingStatus(b)})
	}
}

// @Summary  Cancel booking
// @Param    id path int true "Booking ID"
// @Success  200 {object} BookingResponse
// @Failure  403 {object} ErrorResponse "not the owner"
// @Failure  409 {object} ErrorResponse "already cancelled"
// @Router   /admin/bookings/{id}/cancel [put]
func handleCancelBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		actor := booking.Actor{Admin: isAdmin(c)}
		if userID, ok := currentUserID(c); ok {
			actor.UserID = userID
		}

		b, err := svcs.Booking.Cancel(c.Request.Context(), id, actor)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": b.ID, "status": bookingStatus(b)})
	}
}

// @Summary  Live floor status
// @Success  200 {array} FloorTableResponse
// @Router   /admin/floor [get]
func handleFloor(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables, err := svcs.Availability.FloorStatus(c.Request.Context(), time.Now())
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toFloorResponse(tables))
	}
}

// @Summary  Ring up a walk-in sale
// @Param    req body CreateSaleRequest true "payload"
// @Success  201 {object} SaleResponse
// @Failure  409 {object} ErrorResponse "table busy"
// @Router   /admin/orders [post]
func handleCreateSale(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		userID, _ := currentUserID(c)

		sale, err := svcs.Orders.CreateSale(c.Request.Context(), orders.CreateSaleParams{
			UserID:  userID,
			TableID: req.TableID,
			Items:   toOrderItems(req.Items),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, toSaleResponse(sale))
	}
}

// @Summary  Complete sale
// @Param    id path int true "Sale ID"
// @Success  200 {object} SaleResponse
// @Failure  409 {object} ErrorResponse "not pending"
// @Router   /admin/orders/{id}/complete [post]
func handleCompleteSale(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		sale, err := svcs.Orders.CompleteSale(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": sale.ID, "status": string(sale.Status)})
	}
}

// @Summary  Cancel sale
// @Param    id path int true "Sale ID"
// @Success  200 {object} SaleResponse
// @Failure  409 {object} ErrorResponse "not pending"
// @Router   /admin/orders/{id}/cancel [post]
func handleCancelSale(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		sale, err := svcs.Orders.CancelSale(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": sale.ID, "status": string(sale.Status)})
	}
}

// @Summary  List active pending orders
// @Success  200 {array} PendingOrderResponse
// @Router   /admin/pending-orders [get]
func handleListPending(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		pos, err := svcs.Orders.ListPending(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		out := make([]PendingOrderResponse, 0, len(pos))
		for i := range pos {
			out = append(out, toPendingResponse(&pos[i]))
		}

		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Save draft order for a table
// @Param    req body SavePendingRequest true "payload"
// @Success  200 {object} PendingOrderResponse
// @Failure  409 {object} ErrorResponse "table busy"
// @Router   /admin/pending-orders [post]
func handleSavePending(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SavePendingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		userID, _ := currentUserID(c)

		po, err := svcs.Orders.SavePending(c.Request.Context(), orders.SavePendingParams{
			UserID:  userID,
			TableID: req.TableID,
			Items:   toOrderItems(req.Items),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toPendingResponse(po))
	}
}

// @Summary  Finalize draft into a sale
// @Param    id path int true "Pending order ID"
// @Success  201 {object} SaleResponse
// @Failure  409 {object} ErrorResponse "already finalized"
// @Router   /admin/pending-orders/{id}/finalize [post]
func handleFinalizePending(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		sale, err := svcs.Orders.FinalizePending(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, toSaleResponse(sale))
	}
}

// @Summary  Discard draft order
// @Param    id path int true "Pending order ID"
// @Success  204
// @Router   /admin/pending-orders/{id} [delete]
func handleDestroyPending(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := svcs.Orders.DestroyPending(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create menu category
// @Param    req body CategoryRequest true "payload"
// @Success  201 {object} MenuCategoryResponse
// @Router   /admin/menu/categories [post]
func handleCreateCategory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		cat, err := svcs.Menu.CreateCategory(c.Request.Context(), req.Name)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, MenuCategoryResponse{ID: cat.ID, Name: cat.Name, Menus: []MenuItemResponse{}})
	}
}

// @Summary  Rename menu category
// @Param    id  path int true "Category ID"
// @Param    req body CategoryRequest true "payload"
// @Success  204
// @Router   /admin/menu/categories/{id} [put]
func handleUpdateCategory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req CategoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		if err := svcs.Menu.UpdateCategory(c.Request.Context(), id, req.Name); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete menu category
// @Param    id path int true "Category ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "category still has items"
// @Router   /admin/menu/categories/{id} [delete]
func handleDeleteCategory(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := svcs.Menu.DeleteCategory(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create menu item
// @Param    req body MenuItemRequest true "payload"
// @Success  201 {object} MenuItemResponse
// @Router   /admin/menu [post]
func handleCreateMenuItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		m, err := svcs.Menu.CreateMenu(c.Request.Context(), menu.MenuParams{
			CategoryID: req.CategoryID,
			Name:       req.Name,
			PriceCents: req.PriceCents,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, MenuItemResponse{
			ID:         m.ID,
			CategoryID: m.CategoryID,
			Name:       m.Name,
			PriceCents: m.PriceCents,
		})
	}
}

// @Summary  Update menu item
// @Param    id  path int true "Menu ID"
// @Param    req body UpdateMenuItemRequest true "payload"
// @Success  204
// @Router   /admin/menu/{id} [put]
func handleUpdateMenuItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req UpdateMenuItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		if err := svcs.Menu.UpdateMenu(c.Request.Context(), id, req.Name, req.PriceCents); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete menu item
// @Param    id path int true "Menu ID"
// @Success  204
// @Failure  409 {object} ErrorResponse "referenced by orders"
// @Router   /admin/menu/{id} [delete]
func handleDeleteMenuItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		if err := svcs.Menu.DeleteMenu(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  My reservations
// @Success  200 {array} BookingResponse
// @Router   /customer/reservations [get]
func handleMyReservations(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing identity"})
			return
		}

		out, err := svcs.Booking.ListForUser(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toBookingResponses(out))
	}
}

// --- Helpers ---

func toOrderItems(in []OrderItemInput) []orders.Item {
	out := make([]orders.Item, 0, len(in))
	for _, it := range in {
		out = append(out, orders.Item{MenuID: it.MenuID, Quantity: it.Quantity})
	}

	return out
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// auth service
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	// availability service
	case errors.Is(err, availability.ErrTableNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "table not found"})

	// booking service
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, booking.ErrTableNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "table not found"})
	case errors.Is(err, booking.ErrMenuNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "menu item not found"})
	case errors.Is(err, booking.ErrDateInPast):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date is in the past"})
	case errors.Is(err, booking.ErrBadSlot):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "time is not on the booking grid"})
	case errors.Is(err, booking.ErrBadQuantity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quantity must be positive"})
	case errors.Is(err, booking.ErrSlotTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "table already booked for this time"})
	case errors.Is(err, booking.ErrAlreadyConfirmed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking already confirmed"})
	case errors.Is(err, booking.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking already cancelled"})
	case errors.Is(err, booking.ErrNotOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not your reservation"})

	// menu service
	case errors.Is(err, menu.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, menu.ErrNameTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "name already taken"})
	case errors.Is(err, menu.ErrCategoryInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "category still has menu items"})
	case errors.Is(err, menu.ErrMenuInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "menu item referenced by orders"})

	// orders service
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "order not found"})
	case errors.Is(err, orders.ErrTableNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "table not found"})
	case errors.Is(err, orders.ErrMenuNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "menu item not found"})
	case errors.Is(err, orders.ErrBadQuantity):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quantity must be positive"})
	case errors.Is(err, orders.ErrNoItems):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order has no items"})
	case errors.Is(err, orders.ErrTableBusy):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "table is busy"})
	case errors.Is(err, orders.ErrNotPending):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "sale is not pending"})
	case errors.Is(err, orders.ErrDraftClosed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "pending order already finalized"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
