package features

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/consoletest"
	"github.com/fec-cms/console/internal/models"
)

func TestValidate(t *testing.T) {
	assert.Empty(t, Validate(Draft{Name: "fursuit lounge", Category: models.FeatureCategoryFacility}))

	errs := Validate(Draft{Name: strings.Repeat("x", 257), Category: "food"})
	assert.Equal(t, []string{"category", "name"}, errs.Keys())

	errs = Validate(Draft{Name: strings.Repeat("x", 256), Category: models.FeatureCategoryEvent})
	assert.Empty(t, errs)
}

func TestWire(t *testing.T) {
	raw, err := json.Marshal(ToWirePayload(Draft{Name: " dealers ", Category: models.FeatureCategoryEvent}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"dealers","category":"event","description":null}`, string(raw))
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory([]models.Feature{
		{ID: "1", Category: models.FeatureCategoryFacility},
		{ID: "2", Category: "legacy"},
		{ID: "3", Category: models.FeatureCategoryEvent},
		{ID: "4", Category: models.FeatureCategoryFacility},
	})

	require.Len(t, groups, 3)
	assert.Equal(t, "活动", groups[0].Label)
	assert.Equal(t, "设施", groups[1].Label)
	assert.Equal(t, []string{"1", "4"}, []string{groups[1].Features[0].ID, groups[1].Features[1].ID})
	assert.Equal(t, "其他", groups[2].Label)
	assert.Equal(t, "2", groups[2].Features[0].ID)
}

func TestGroupByCategoryEmpty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
}

func TestHandlerDeleteAndCreate(t *testing.T) {
	env := consoletest.New(t, func(w http.ResponseWriter, r *http.Request) {
		consoletest.JSON(w, http.StatusOK, models.Feature{ID: "f7"})
	})
	h := NewHandler(env.API, zap.NewNop())
	env.Router.POST("/features", h.Create)
	env.Router.DELETE("/features/:id", h.Delete)

	w := env.Do(t, http.MethodDelete, "/features/f1", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Empty(t, env.Calls())

	w = env.Do(t, http.MethodPost, "/features", Draft{Name: "night party", Category: models.FeatureCategoryEvent})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/dashboard/feature/f7/edit", consoletest.Decode(t, w).Redirect)
	require.Len(t, env.Calls(), 1)
	assert.Contains(t, env.Calls()[0].Body, "feature")
}
