package models

// OrderStatus trạng thái đơn hàng.
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = iota // Chờ xác nhận
	OrderStatusConfirmed                    // Đã xác nhận
	OrderStatusShipping                     // Đang giao
	OrderStatusCompleted                    // Hoàn thành
	OrderStatusCancelled                    // Đã hủy
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "pending"
	case OrderStatusConfirmed:
		return "confirmed"
	case OrderStatusShipping:
		return "shipping"
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsValid kiểm tra giá trị nằm trong dải trạng thái đã khai báo.
func (s OrderStatus) IsValid() bool {
	return s >= OrderStatusPending && s <= OrderStatusCancelled
}

// IsTerminal đơn đã hoàn thành hoặc đã hủy thì không đổi trạng thái nữa.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}
