package ginserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/facade"
	domainlisting "staybook/internal/domain/listing"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
	"staybook/internal/infra/storage/memory"
)

func newPropertyHandler(t *testing.T) PropertyHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	listings := memory.NewListingRepository()
	properties := memory.NewPropertyRepository()
	ctx := context.Background()

	if err := properties.Save(ctx, &domainproperty.Property{
		ID:       "prop-1",
		HostID:   "host-1",
		PublicID: 1,
		Name:     "Seaside flat",
		Capacity: 4,
	}); err != nil {
		t.Fatalf("seed property: %v", err)
	}

	l, err := domainlisting.NewListing(domainlisting.CreateParams{
		ID:            "lst-1",
		PropertyID:    "prop-1",
		PublicID:      1,
		PricePerNight: money.Must(12000, "EUR"),
		Now:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewListing: %v", err)
	}
	if err := listings.Save(ctx, l); err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	return PropertyHandler{
		Facade:      facade.NewModule(listings, properties),
		ListingRepo: listings,
	}
}

func propertyRequest(t *testing.T, id string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	return w, c
}

func TestPropertyGet(t *testing.T) {
	h := newPropertyHandler(t)

	t.Run("known property", func(t *testing.T) {
		w, c := propertyRequest(t, "prop-1")
		h.Get(c)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var body struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.ID != "prop-1" || body.Name != "Seaside flat" {
			t.Fatalf("body = %+v", body)
		}
	})

	t.Run("missing property", func(t *testing.T) {
		w, c := propertyRequest(t, "prop-missing")
		h.Get(c)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestPropertyListings(t *testing.T) {
	h := newPropertyHandler(t)

	t.Run("known property", func(t *testing.T) {
		w, c := propertyRequest(t, "prop-1")
		h.Listings(c)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var body struct {
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body.Items) != 1 || body.Items[0].ID != "lst-1" {
			t.Fatalf("items = %+v, want [lst-1]", body.Items)
		}
	})

	t.Run("missing property", func(t *testing.T) {
		w, c := propertyRequest(t, "prop-missing")
		h.Listings(c)
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}
