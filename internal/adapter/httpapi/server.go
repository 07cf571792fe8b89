package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/adapter/httpapi/middleware"
)

const requestTimeout = 15 * time.Second

// NewRouter assembles the full HTTP surface. Search and single-property
// reads are public; everything else sits behind the JWT middleware.
// Role checks happen in the usecases through the authorization policy,
// not here.
func NewRouter(
	properties *PropertyHandler,
	favorites *FavoriteHandler,
	admin *AdminHandler,
	jwtSecret string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(middleware.Tracing)
	r.Use(middleware.RequestLogger(logger))

	r.Get("/properties", properties.Search)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, logger))

		r.Get("/properties/mine", properties.MyListings)
		r.Post("/properties", properties.Create)
		r.Put("/properties/{id}", properties.Update)
		r.Delete("/properties/{id}", properties.Delete)
		r.Post("/properties/{id}/images", properties.AttachPhoto)
		r.Post("/properties/{id}/videos", properties.AttachVideo)

		r.Post("/favorites", favorites.Toggle)
		r.Get("/favorites", favorites.List)

		r.Get("/admin/properties", admin.ListProperties)
		r.Put("/admin/properties", admin.SetActive)
		r.Get("/admin/stats", admin.Stats)
	})

	// chi prefers static routes, so /properties/mine above keeps its
	// auth requirement while the id form stays public.
	r.Get("/properties/{id}", properties.GetByID)

	return r
}
