package http

import (
	"net/http"

	"institute-admin-console/internal/delivery/http/handler"
	"institute-admin-console/internal/delivery/http/middleware"
	"institute-admin-console/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	studentHandler      *handler.StudentHandler
	consultationHandler *handler.ConsultationHandler
	slotHandler         *handler.SlotHandler
	cmsHandler          *handler.CMSHandler
	branchHandler       *handler.BranchHandler
	reviewHandler       *handler.ReviewHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loginRateLimit      *middleware.RateLimitMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	studentHandler *handler.StudentHandler,
	consultationHandler *handler.ConsultationHandler,
	slotHandler *handler.SlotHandler,
	cmsHandler *handler.CMSHandler,
	branchHandler *handler.BranchHandler,
	reviewHandler *handler.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loginRateLimit *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		studentHandler:      studentHandler,
		consultationHandler: consultationHandler,
		slotHandler:         slotHandler,
		cmsHandler:          cmsHandler,
		branchHandler:       branchHandler,
		reviewHandler:       reviewHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loginRateLimit:      loginRateLimit,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, rate limited)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Handle("/login", r.loginRateLimit.Limit(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentAdmin).Methods(http.MethodGet)

	// Console routes (protected - admin only)
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Students
	admin.HandleFunc("/students", r.studentHandler.ListStudents).Methods(http.MethodGet)
	admin.HandleFunc("/students/{id}", r.studentHandler.DeleteStudent).Methods(http.MethodDelete)

	// Consultations
	admin.HandleFunc("/consultations", r.consultationHandler.ListConsultations).Methods(http.MethodGet)
	admin.HandleFunc("/consultations/{id}/status", r.consultationHandler.UpdateStatus).Methods(http.MethodPut)
	admin.HandleFunc("/consultations/{id}/files", r.consultationHandler.UploadFiles).Methods(http.MethodPost)
	admin.HandleFunc("/consultations/{id}/files", r.consultationHandler.ListFiles).Methods(http.MethodGet)
	admin.HandleFunc("/consultations/{id}/files/{fileId}", r.consultationHandler.RemoveFile).Methods(http.MethodDelete)

	// Slots; fixed paths are registered before /slots/{id}
	admin.HandleFunc("/slots", r.slotHandler.ListSlots).Methods(http.MethodGet)
	admin.HandleFunc("/slots/stats", r.slotHandler.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/slots/overview", r.slotHandler.GetOverview).Methods(http.MethodGet)
	admin.HandleFunc("/slots/bulk", r.slotHandler.BulkCreate).Methods(http.MethodPost)
	admin.HandleFunc("/slots/bulk/preview", r.slotHandler.PreviewBulk).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}/block", r.slotHandler.SetBlocked).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{id}", r.slotHandler.DeleteSlot).Methods(http.MethodDelete)

	// CMS
	admin.HandleFunc("/cms/{section}", r.cmsHandler.GetSection).Methods(http.MethodGet)
	admin.HandleFunc("/cms/{section}", r.cmsHandler.UpdateHTML).Methods(http.MethodPut)
	admin.HandleFunc("/cms/{section}/banners", r.cmsHandler.UpdateBanners).Methods(http.MethodPut)
	admin.HandleFunc("/uploads", r.cmsHandler.UploadImage).Methods(http.MethodPost)

	// Branches
	admin.HandleFunc("/branches", r.branchHandler.ListBranches).Methods(http.MethodGet)
	admin.HandleFunc("/branches/{id}", r.branchHandler.ReplaceBranch).Methods(http.MethodPut)

	// Reviews
	admin.HandleFunc("/reviews", r.reviewHandler.ListReviews).Methods(http.MethodGet)
	admin.HandleFunc("/reviews/{id}/approve", r.reviewHandler.ApproveReview).Methods(http.MethodPatch)
	admin.HandleFunc("/reviews/{id}", r.reviewHandler.DeleteReview).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
