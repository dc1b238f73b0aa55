package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getforms "planta-backend/http-server/forms/get"
	saveforms "planta-backend/http-server/forms/save"
	upforms "planta-backend/http-server/forms/update"
	reportexcel "planta-backend/http-server/generate-report/generate-excel"
	getreference "planta-backend/http-server/products/get"
	recalchandler "planta-backend/http-server/recalculate"
	getrecords "planta-backend/http-server/records/get"
	saverecords "planta-backend/http-server/records/save"
	uprecords "planta-backend/http-server/records/update"
	"planta-backend/http-server/scaling"
	"planta-backend/internal/config"
	"planta-backend/internal/middleware/auth"
	generate_excel "planta-backend/internal/service/generate-excel"
	"planta-backend/internal/service/recalculate"
	"planta-backend/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, recalcService *recalculate.RecalcService, reportService *generate_excel.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// form templates
	router.Get("/api/forms", getforms.GetFormByCode(log, storage))
	router.Get("/api/forms/all", getforms.GetAllForms(log, storage))

	// record entries
	router.Get("/api/records/{id}", getrecords.GetRecord(log, storage))
	router.Get("/api/records", getrecords.GetRecordsByForm(log, storage))
	router.Post("/api/records", saverecords.SaveRecord(log, storage))
	router.Put("/api/records/{id}/rows", uprecords.UpdateRecordRows(log, recalcService))

	// derived-value engine entry points
	router.Post("/api/records/recalculate", recalchandler.RecalculateRecord(log, recalcService))
	router.Post("/api/records/scaling", scaling.ApplyScaling(log, recalcService))

	// reference data
	router.Get("/api/products", getreference.GetProducts(log, storage))
	router.Get("/api/employees", getreference.GetEmployees(log, storage))

	// report export
	router.Get("/api/report/excel", reportexcel.GenerateReportExcel(log, reportService))

	// form designer
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/forms", getforms.GetFormByCodeAdmin(log, storage))
	adminRouter.Post("/forms/new", saveforms.SaveFormAdmin(log, storage))
	adminRouter.Put("/forms/update/{code}", upforms.UpdateFormAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	// static frontend, SPA fallback
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend directory not found, serving API only", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
