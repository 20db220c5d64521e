package variants_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/variants"
	"catalog-manager/feature/variants/models"
	"catalog-manager/feature/variants/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(f *fixture) *fiber.App {
	app := fiber.New()
	variants.NewHandler(f.service).RegisterRoutes(app)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestHandler_DriftAndCommit(t *testing.T) {
	f := newFixture(t)
	app := newApp(f)

	status, body := do(t, app, "POST", "/products/"+f.productID+"/drift", "")
	require.Equal(t, fiber.StatusOK, status, string(body))

	var view variants.SessionView
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.ToCreate, 1)
	assert.Equal(t, "M", view.ToCreate[0].Title)

	status, body = do(t, app, "PATCH", "/drift/"+view.SessionID+"/create/"+view.ToCreate[0].ID, `{"sku":"TS-M","inventoryQuantity":5}`)
	require.Equal(t, fiber.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "TS-M", view.ToCreate[0].SKU)
	assert.Equal(t, 5, view.ToCreate[0].InventoryQuantity)

	status, body = do(t, app, "POST", "/drift/"+view.SessionID+"/commit", "")
	require.Equal(t, fiber.StatusOK, status, string(body))

	var outcome variants.CommitOutcome
	require.NoError(t, json.Unmarshal(body, &outcome))
	require.Len(t, outcome.Created, 1)
	assert.Equal(t, "M", outcome.Created[0].Title)

	status, body = do(t, app, "GET", "/products/"+f.productID+"/variants", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"sku":"TS-M"`)
}

func TestHandler_DriftWithOptions(t *testing.T) {
	f := newFixture(t)
	app := newApp(f)

	payload := `{"options":[{"title":"Size","values":[{"value":"M"}]},{"title":"Color","values":[{"value":"Red"},{"value":"Blue"}]}]}`
	status, body := do(t, app, "POST", "/products/"+f.productID+"/drift", payload)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var view variants.SessionView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Len(t, view.ToCreate, 2)
	assert.Len(t, view.ToDelete, 1)

	status, body = do(t, app, "DELETE", "/drift/"+view.SessionID+"/delete/"+f.variantS, "")
	require.Equal(t, fiber.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Empty(t, view.ToDelete)

	status, body = do(t, app, "DELETE", "/drift/"+view.SessionID+"/create/"+view.ToCreate[0].ID, "")
	require.Equal(t, fiber.StatusOK, status, string(body))
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Len(t, view.ToCreate, 1)

	status, _ = do(t, app, "GET", "/drift/"+view.SessionID, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestHandler_PartialCommit(t *testing.T) {
	f := newFixture(t)
	app := newApp(f)

	status, body := do(t, app, "POST", "/products/"+f.productID+"/drift", `{"options":[{"title":"Size","values":[{"value":"M"}]}]}`)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var view variants.SessionView
	require.NoError(t, json.Unmarshal(body, &view))

	require.NoError(t, f.db.Where("code = ?", "eur").Delete(&models.Currency{}).Error)

	status, body = do(t, app, "POST", "/drift/"+view.SessionID+"/commit", "")
	assert.Equal(t, fiber.StatusMultiStatus, status)

	var outcome variants.CommitOutcome
	require.NoError(t, json.Unmarshal(body, &outcome))
	require.Len(t, outcome.Failures, 1)
	assert.Contains(t, outcome.Failures[0].Error, "unknown currency")
	assert.Len(t, outcome.Deleted, 1)
}

func TestHandler_Errors(t *testing.T) {
	f := newFixture(t)
	app := newApp(f)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"UnknownProduct", "GET", "/products/999/variants", "", fiber.StatusNotFound},
		{"InvalidProductID", "GET", "/products/abc/options", "", fiber.StatusBadRequest},
		{"BadBody", "POST", "/products/" + f.productID + "/drift", "{", fiber.StatusBadRequest},
		{"UnknownSession", "POST", "/drift/nope/commit", "", fiber.StatusNotFound},
		{"UnknownSessionDelete", "DELETE", "/drift/nope/delete/1", "", fiber.StatusNotFound},
		{"NotPending", "PATCH", "/drift/nope/create/" + f.variantS, `{"sku":"x"}`, fiber.StatusConflict},
		{"MissingReport", "GET", "/products/" + f.productID + "/drift/reports/nope.txt", "", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, status, string(body))
			assert.Contains(t, string(body), `"error"`)
		})
	}
}

// gatedStore holds every variant creation until release is closed.
type gatedStore struct {
	*store.Store
	started chan struct{}
	release chan struct{}
}

func (g *gatedStore) CreateVariant(ctx context.Context, productID string, input reconcile.CreateVariantInput) (string, error) {
	close(g.started)
	<-g.release
	return g.Store.CreateVariant(ctx, productID, input)
}

func TestHandler_CommitInFlight(t *testing.T) {
	f := newFixture(t)
	gated := &gatedStore{Store: f.store, started: make(chan struct{}), release: make(chan struct{})}
	svc := variants.NewService(gated, nil, nil, nil, variants.Config{SessionTTLMinutes: 60})
	app := fiber.New()
	variants.NewHandler(svc).RegisterRoutes(app)

	status, body := do(t, app, "POST", "/products/"+f.productID+"/drift", "")
	require.Equal(t, fiber.StatusOK, status, string(body))
	var view variants.SessionView
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.ToCreate, 1)
	pending := view.ToCreate[0].ID

	done := make(chan error, 1)
	go func() {
		_, err := svc.Commit(context.Background(), view.SessionID)
		done <- err
	}()
	<-gated.started

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"Commit", "POST", "/drift/" + view.SessionID + "/commit", ""},
		{"RemoveFromCreate", "DELETE", "/drift/" + view.SessionID + "/create/" + pending, ""},
		{"UpdatePending", "PATCH", "/drift/" + view.SessionID + "/create/" + pending, `{"sku":"x"}`},
		{"Recompute", "POST", "/products/" + f.productID + "/drift", `{"sessionId":"` + view.SessionID + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, tt.method, tt.path, tt.body)
			assert.Equal(t, fiber.StatusConflict, status, string(body))
		})
	}

	close(gated.release)
	require.NoError(t, <-done)
}

func TestHandler_Preview(t *testing.T) {
	f := newFixture(t)
	app := newApp(f)

	status, body := do(t, app, "POST", "/products/"+f.productID+"/drift/preview", `{"options":[{"title":"Size","values":[{"value":"M"}]}]}`)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var result reconcile.DriftResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.Len(t, result.ToCreate, 1)
	assert.Equal(t, "M", result.ToCreate[0].Title)
	require.Len(t, result.ToDelete, 1)
	assert.Equal(t, f.variantS, result.ToDelete[0].ID)

	status, _ = do(t, app, "POST", "/products/999/drift/preview", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
