package httpgin

import (
	"time"

	"tablebook/internal/domain"
	"tablebook/internal/service/availability"
)

// --- Requests ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type OrderItemInput struct {
	MenuID   int64 `json:"menu_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gt=0"`
}

type CreateBookingRequest struct {
	TableID     int64            `json:"table_id" binding:"required"`
	Date        string           `json:"date" binding:"required"`
	Time        string           `json:"time" binding:"required"`
	Firstname   string           `json:"firstname" binding:"required"`
	Lastname    string           `json:"lastname" binding:"required"`
	Address     string           `json:"address"`
	PhoneNumber string           `json:"phone_number" binding:"required"`
	Items       []OrderItemInput `json:"items" binding:"omitempty,dive"`
}

type CreateSaleRequest struct {
	TableID int64            `json:"table_id" binding:"required"`
	Items   []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type SavePendingRequest struct {
	TableID int64            `json:"table_id" binding:"required"`
	Items   []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type MenuItemRequest struct {
	CategoryID int64  `json:"category_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	PriceCents int    `json:"price_cents" binding:"required,gt=0"`
}

type UpdateMenuItemRequest struct {
	Name       string `json:"name" binding:"required"`
	PriceCents int    `json:"price_cents" binding:"required,gt=0"`
}

// --- Responses ---

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type LineItemResponse struct {
	MenuID        int64  `json:"menu_id"`
	MenuName      string `json:"menu_name"`
	Quantity      int    `json:"quantity"`
	PriceCents    int    `json:"price_cents"`
	SubtotalCents int    `json:"subtotal_cents"`
}

type BookingResponse struct {
	ID          int64              `json:"id"`
	TableID     int64              `json:"table_id"`
	TableName   string             `json:"table_name,omitempty"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	Firstname   string             `json:"firstname"`
	Lastname    string             `json:"lastname"`
	PhoneNumber string             `json:"phone_number"`
	TotalCents  int                `json:"total_cents"`
	Status      string             `json:"status"`
	Items       []LineItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type AvailableTimesResponse struct {
	Date    string                                `json:"date"`
	TableID int64                                 `json:"table_id,omitempty"`
	Times   []string                              `json:"times"`
	Booked  map[string]availability.SlotOccupancy `json:"booked"`
}

type FloorTableResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
	Guest    string `json:"guest,omitempty"`
	Time     string `json:"time,omitempty"`
}

type MenuItemResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	PriceCents int    `json:"price_cents"`
}

type MenuCategoryResponse struct {
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Menus []MenuItemResponse `json:"menus"`
}

type SaleResponse struct {
	ID         int64              `json:"id"`
	TableID    int64              `json:"table_id,omitempty"`
	TotalCents int                `json:"total_cents"`
	Status     string             `json:"status"`
	Items      []LineItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type PendingOrderResponse struct {
	ID         int64              `json:"id"`
	TableID    int64              `json:"table_id"`
	TableName  string             `json:"table_name,omitempty"`
	TotalCents int                `json:"total_cents"`
	Status     string             `json:"status"`
	Items      []LineItemResponse `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
}

// --- Mapping ---

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func toLineItems(items []domain.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			MenuID:        it.MenuID,
			MenuName:      it.MenuName,
			Quantity:      it.Quantity,
			PriceCents:    it.PriceCents,
			SubtotalCents: it.SubtotalCents,
		})
	}

	return out
}

func bookingStatus(b *domain.Booking) string {
	switch {
	case !b.IsActive():
		return "cancelled"
	case b.IsConfirmed():
		return "confirmed"
	default:
		return "pending"
	}
}

func toBookingResponse(b *domain.BookingWithDetails) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		TableID:     b.TableID,
		TableName:   b.TableName,
		Date:        b.Date.Format(time.DateOnly),
		Time:        b.Slot,
		Firstname:   b.Firstname,
		Lastname:    b.Lastname,
		PhoneNumber: b.PhoneNumber,
		TotalCents:  b.TotalCents,
		Status:      bookingStatus(&b.Booking),
		Items:       toLineItems(b.Items),
		CreatedAt:   b.CreatedAt,
	}
}

func toBookingResponses(in []domain.BookingWithDetails) []BookingResponse {
	out := make([]BookingResponse, 0, len(in))
	for i := range in {
		out = append(out, toBookingResponse(&in[i]))
	}

	return out
}

func toFloorResponse(in []domain.FloorTable) []FloorTableResponse {
	out := make([]FloorTableResponse, 0, len(in))
	for _, t := range in {
		out = append(out, FloorTableResponse{
			ID:       t.ID,
			Name:     t.Name,
			Capacity: t.Capacity,
			Status:   string(t.Status),
			Guest:    t.Guest,
			Time:     t.Slot,
		})
	}

	return out
}

func toCatalogResponse(in []domain.MenuCategoryWithItems) []MenuCategoryResponse {
	out := make([]MenuCategoryResponse, 0, len(in))
	for _, c := range in {
		menus := make([]MenuItemResponse, 0, len(c.Menus))
		for _, m := range c.Menus {
			menus = append(menus, MenuItemResponse{
				ID:         m.ID,
				CategoryID: m.CategoryID,
				Name:       m.Name,
				PriceCents: m.PriceCents,
			})
		}

		out = append(out, MenuCategoryResponse{ID: c.ID, Name: c.Name, Menus: menus})
	}

	return out
}

func toSaleResponse(s *domain.SaleWithItems) SaleResponse {
	return SaleResponse{
		ID:         s.ID,
		TableID:    s.TableID,
		TotalCents: s.TotalCents,
		Status:     string(s.Status),
		Items:      toLineItems(s.Items),
		CreatedAt:  s.CreatedAt,
	}
}

func toPendingResponse(po *domain.PendingOrderWithItems) PendingOrderResponse {
	return PendingOrderResponse{
		ID:         po.ID,
		TableID:    po.TableID,
		TableName:  po.TableName,
		TotalCents: po.TotalCents,
		Status:     string(po.Status),
		Items:      toLineItems(po.Items),
		CreatedAt:  po.CreatedAt,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
