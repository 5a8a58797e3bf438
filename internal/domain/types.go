package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

type Table struct {
	ID       int64
	Name     string
	Capacity int
}

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
)

// FloorTable is a table with its live status derived from the occupancy
// ledger. Guest and Slot are set when a confirmed booking currently holds
// the table.
type FloorTable struct {
	Table
	Status TableStatus
	Guest  string
	Slot   string
}

// OwnerKind tags the entity a ledger entry or line item belongs to.
type OwnerKind string

const (
	OwnerBooking      OwnerKind = "booking"
	OwnerSale         OwnerKind = "sale"
	OwnerPendingOrder OwnerKind = "pending_order"
)

// OccupancyEntry claims one table for one owner at a date and slot time.
type OccupancyEntry struct {
	ID        int64
	TableID   int64
	OwnerKind OwnerKind
	OwnerID   int64
	Date      time.Time
	Slot      string
}

// LedgerEntry is an occupancy entry joined to its table and owner. Entries
// whose owner is cancelled are filtered out at the repository level and
// never appear here.
type LedgerEntry struct {
	OccupancyEntry
	TableName     string
	TableCapacity int
	// Confirmed and Guest are populated for booking owners.
	Confirmed bool
	Guest     string
	// SaleStatus is populated for sale owners.
	SaleStatus SaleStatus
}

type MenuCategory struct {
	ID   int64
	Name string
}

type Menu struct {
	ID         int64
	CategoryID int64
	Name       string
	PriceCents int
	CreatedAt  time.Time
}

type MenuCategoryWithItems struct {
	MenuCategory
	Menus []Menu
}

// LineItem is an ordered menu item with its price snapshotted at order
// time. Later menu price changes never alter historical subtotals.
type LineItem struct {
	ID            int64
	MenuID        int64
	MenuName      string
	Quantity      int
	PriceCents    int
	SubtotalCents int
}

type SaleStatus string

const (
	SalePending   SaleStatus = "pending"
	SaleCompleted SaleStatus = "completed"
	SaleCancelled SaleStatus = "cancelled"
)

type Sale struct {
	ID         int64
	UserID     int64
	TotalCents int
	Status     SaleStatus
	CreatedAt  time.Time
}

type SaleWithItems struct {
	Sale
	TableID int64
	Items   []LineItem
}

type PendingOrderStatus string

const (
	PendingOrderActive    PendingOrderStatus = "active"
	PendingOrderCompleted PendingOrderStatus = "completed"
)

type PendingOrder struct {
	ID         int64
	TableID    int64
	UserID     int64
	TotalCents int
	Status     PendingOrderStatus
	CreatedAt  time.Time
}

type PendingOrderWithItems struct {
	PendingOrder
	TableName string
	Items     []LineItem
}
