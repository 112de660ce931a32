package usecase

import "github.com/polkiloo/designstudio/internal/domain/model"

// Authorized reports whether caller may view or mutate the order: staff or owner.
func Authorized(caller model.Subject, order *model.Order) bool {
	if order == nil || caller.Anonymous() {
		return false
	}
	return caller.IsStaff || caller.ID == order.UserID
}
