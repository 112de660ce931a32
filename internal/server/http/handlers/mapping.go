package handlers

import (
	"github.com/samber/lo"

	"github.com/polkiloo/designstudio/internal/domain/model"
	"github.com/polkiloo/designstudio/internal/server/http/dto"
)

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Phone:       user.Phone,
		CompanyName: user.CompanyName,
		IsStaff:     user.IsStaff,
		CreatedAt:   user.CreatedAt,
	}
}

func toTariffResponse(t model.Tariff, _ int) dto.TariffResponse {
	return dto.TariffResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Price:       t.Price.StringFixed(2),
		Features:    lo.Ternary(t.Features == nil, []string{}, t.Features),
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toOrderResponse(o model.Order, _ int) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                 o.ID,
		User:               o.UserID,
		Tariff:             o.TariffID,
		Status:             string(o.Status),
		ProjectName:        o.ProjectName,
		ProjectDescription: o.ProjectDescription,
		ReferenceLinks:     lo.Ternary(o.ReferenceLinks == nil, []string{}, o.ReferenceLinks),
		Requirements:       o.Requirements,
		Deadline:           dto.NewDate(o.Deadline),
		Attachments:        lo.Ternary(o.Attachments == nil, []string{}, o.Attachments),
		Comments:           o.Comments,
		TotalPrice:         o.TotalPrice.StringFixed(2),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.Tariff != nil {
		details := toTariffResponse(*o.Tariff, 0)
		resp.TariffDetails = &details
	}
	return resp
}

func toAdminOrderResponse(o model.Order) dto.AdminOrderResponse {
	return dto.AdminOrderResponse{OrderResponse: toOrderResponse(o, 0), IsDeleted: o.IsDeleted}
}

func toRegistration(req dto.RegisterRequest) model.Registration {
	return model.Registration{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Password2:   req.Password2,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	}
}

func toNewTariff(req dto.TariffRequest) model.NewTariff {
	return model.NewTariff{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Features:    req.Features,
		IsActive:    lo.FromPtrOr(req.IsActive, true),
	}
}

func toNewOrder(req dto.OrderRequest) model.NewOrder {
	return model.NewOrder{
		TariffID:           req.Tariff,
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		Requirements:       req.Requirements,
		ReferenceLinks:     req.ReferenceLinks,
		Attachments:        req.Attachments,
		Comments:           req.Comments,
		Deadline:           req.Deadline.Ptr(),
	}
}

func toOrderPatch(req dto.OrderPatchRequest) model.OrderPatch {
	patch := model.OrderPatch{
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		ReferenceLinks:     req.ReferenceLinks,
		Requirements:       req.Requirements,
		Deadline:           req.Deadline.Ptr(),
		Attachments:        req.Attachments,
		Comments:           req.Comments,
	}
	if req.Status != nil {
		patch.Status = lo.ToPtr(model.OrderStatus(*req.Status))
	}
	return patch
}
