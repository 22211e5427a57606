package controllers

import (
	"net/http"

	"github.com/foodiecrew/catering-backend/api/responses"
	"github.com/foodiecrew/catering-backend/internal/menuitems"
	"github.com/foodiecrew/catering-backend/pkg/db/models"
	pkgerrors "github.com/foodiecrew/catering-backend/pkg/errors"
	"github.com/foodiecrew/catering-backend/pkg/logger"
)

type menuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"`
	FoodType    string  `json:"food_type"`
}

func newMenuItemResponse(item models.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		FoodType:    string(item.FoodType),
	}
}

// MenuList exposes the availability-filtered catalog, ordered by name.
func MenuList(svc menuitems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu service unavailable"))
			return
		}

		items, err := svc.ListAvailable(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]menuItemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, newMenuItemResponse(item))
		}
		responses.WriteSuccess(w, map[string]any{"items": out})
	}
}
