package api

import (
	"encoding/json"
	"net/http"
	"time"

	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(db *sqlx.DB, cache common.CacheInterface, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		dbStatus := "ok"
		dbDetails := "Database Connected"
		if err := db.PingContext(r.Context()); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services["database"] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		if cache != nil {
			cache.Set("health:probe", upSince.Unix(), time.Minute)
			cacheStatus := entities.ServiceStatus{Status: "ok", Details: "Cache reachable"}
			if _, ok := cache.Get("health:probe"); !ok {
				cacheStatus = entities.ServiceStatus{Status: "down", Details: "Cache probe missing"}
			}
			services["cache"] = cacheStatus
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		uptime := now.Sub(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		if overallStatus != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// PluginInfoHandler reports which transporter build is installed.
func PluginInfoHandler(install *config.Install) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.RespondSuccess(w, time.Now(), "", install.Plugin)
	}
}
