// Command seeder fills a fleet-maintenance backend with demo trucks, services,
// materials and measurements.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/resources"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

var truckCatalog = []struct {
	Brand  string
	Models []string
}{
	{"Scania", []string{"R450", "R500", "G410"}},
	{"Volvo", []string{"FH 540", "FM 380", "VM 270"}},
	{"Mercedes-Benz", []string{"Actros", "Axor", "Atego"}},
	{"DAF", []string{"XF", "CF"}},
	{"Iveco", []string{"S-Way", "Tector"}},
}

var equipment = []string{
	"Guindaste articulado",
	"Plataforma elevatória",
	"Caçamba basculante",
	"Munck 15t",
	"Carroceria baú",
	"Tanque pipa",
}

var materialCatalog = []struct {
	Name string
	Unit string
}{
	{"Parafuso sextavado", "un"},
	{"Chapa de aço", "kg"},
	{"Cabo de aço", "m"},
	{"Óleo hidráulico", "L"},
	{"Kit de vedação", "cx"},
	{"Mangueira hidráulica", "pc"},
}

var technicians = []string{"João Silva", "Maria Oliveira", "Carlos Pereira", "Ana Costa"}

// Seeder creates demo records through the REST resources.
type Seeder struct {
	trucks       *resources.Trucks
	services     *resources.Services
	measurements *resources.Measurements
	rng          *rand.Rand
	now          time.Time

	ServicesPerTruck int
}

// Summary counts what a run created.
type Summary struct {
	Trucks       int
	Services     int
	Materials    int
	Measurements int
}

// NewSeeder creates a seeder over client.
func NewSeeder(client *api.Client, rng *rand.Rand, now time.Time) *Seeder {
	return &Seeder{
		trucks:           resources.NewTrucks(client),
		services:         resources.NewServices(client),
		measurements:     resources.NewMeasurements(client),
		rng:              rng,
		now:              now,
		ServicesPerTruck: 3,
	}
}

// Run creates fleetSize trucks, each with its services, materials and
// measurements. A failed truck is logged and skipped; the run fails only when
// no truck could be created.
func (s *Seeder) Run(ctx context.Context, fleetSize int) (Summary, error) {
	var sum Summary
	for i := 0; i < fleetSize; i++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		truck, err := s.createTruck(ctx)
		if err != nil {
			log.WithError(err).Error("Failed to create truck")
			continue
		}
		sum.Trucks++

		for j := 0; j < s.ServicesPerTruck; j++ {
			svc, err := s.createService(ctx, truck.ID)
			if err != nil {
				log.WithError(err).WithField("truck_id", truck.ID).Error("Failed to create service")
				continue
			}
			sum.Services++

			sum.Materials += s.addMaterials(ctx, svc.ID)

			if _, err := s.recordMeasurement(ctx, truck.ID, svc); err != nil {
				log.WithError(err).WithField("service_id", svc.ID).Error("Failed to record measurement")
				continue
			}
			sum.Measurements++
		}
	}

	if sum.Trucks == 0 && fleetSize > 0 {
		return sum, fmt.Errorf("no trucks created")
	}
	return sum, nil
}

func (s *Seeder) createTruck(ctx context.Context) (*models.Truck, error) {
	entry := truckCatalog[s.rng.Intn(len(truckCatalog))]
	in := models.TruckInput{
		Brand: entry.Brand,
		Model: entry.Models[s.rng.Intn(len(entry.Models))],
		Year:  2015 + s.rng.Intn(10),
	}
	truck, err := s.trucks.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"truck_id": truck.ID,
		"brand":    in.Brand,
		"model":    in.Model,
		"year":     in.Year,
	}).Info("Created truck")
	return truck, nil
}

func (s *Seeder) createService(ctx context.Context, truckID string) (*models.Service, error) {
	date := s.now.AddDate(0, 0, -s.rng.Intn(180))
	in := models.ServiceInput{
		TruckID:     truckID,
		Equipment:   equipment[s.rng.Intn(len(equipment))],
		ServiceDate: date.Format("2006-01-02"),
		OF:          fmt.Sprintf("OF-%05d", 1000+s.rng.Intn(90000)),
		Meter:       float64(1 + s.rng.Intn(12)),
		Value:       float64(500+s.rng.Intn(15000)) + float64(s.rng.Intn(100))/100,
		Status:      models.ServiceStatuses[s.rng.Intn(len(models.ServiceStatuses))],
	}
	svc, err := s.services.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"service_id": svc.ID, "truck_id": truckID, "of": in.OF}).Info("Created service")
	return svc, nil
}

func (s *Seeder) addMaterials(ctx context.Context, serviceID string) int {
	created := 0
	for n := 1 + s.rng.Intn(3); n > 0; n-- {
		entry := materialCatalog[s.rng.Intn(len(materialCatalog))]
		in := models.MaterialInput{
			Name:     entry.Name,
			Quantity: float64(1 + s.rng.Intn(20)),
			Unit:     entry.Unit,
		}
		if _, err := s.services.AddMaterial(ctx, serviceID, in); err != nil {
			log.WithError(err).WithField("service_id", serviceID).Error("Failed to add material")
			continue
		}
		created++
	}
	return created
}

func (s *Seeder) recordMeasurement(ctx context.Context, truckID string, svc *models.Service) (*models.Measurement, error) {
	before := float64(3000+s.rng.Intn(2000)) / 1000
	after := before + float64(s.rng.Intn(600)-200)/1000
	date := svc.ServiceDate
	if date == "" {
		date = s.now.Format("2006-01-02")
	}
	return s.measurements.Create(ctx, models.MeasurementInput{
		TruckID:         truckID,
		ServiceID:       svc.ID,
		MeasurementDate: date,
		Technician:      technicians[s.rng.Intn(len(technicians))],
		ValueBefore:     before,
		ValueAfter:      after,
	})
}

// sessionStore picks where the seeder's token comes from: SEED_AUTH_TOKEN,
// SEED_USERNAME/SEED_PASSWORD, or the session saved by 'fleetctl login'.
func sessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if token := os.Getenv("SEED_AUTH_TOKEN"); token != "" {
		store := session.NewMemoryStore()
		return store, store.Save(ctx, &session.Session{Token: token})
	}
	if username := os.Getenv("SEED_USERNAME"); username != "" {
		store := session.NewMemoryStore()
		client := api.NewClient(cfg.APIURL, store)
		manager := auth.NewManager(store, resources.NewAuth(client))
		if _, err := manager.Login(ctx, username, os.Getenv("SEED_PASSWORD")); err != nil {
			return nil, fmt.Errorf("login as %s: %w", username, err)
		}
		return store, nil
	}
	path := cfg.SessionFile
	if path == "" {
		path = session.DefaultPath()
	}
	return session.NewFileStore(path), nil
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return defaultValue
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	cfg.ConfigureLogger(log.StandardLogger())
	if os.Getenv("LOG_LEVEL") == "" {
		log.SetLevel(log.InfoLevel)
	}

	fleetSize := envInt("SEED_TRUCKS", 5)
	store, err := sessionStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to prepare session")
	}

	client := api.NewClient(cfg.APIURL, store, api.WithUnauthorizedHandler(func(ctx context.Context) {
		log.Error("Backend rejected the session. Set SEED_AUTH_TOKEN or SEED_USERNAME/SEED_PASSWORD, or run 'fleetctl login'.")
	}))
	seeder := NewSeeder(client, rand.New(rand.NewSource(time.Now().UnixNano())), time.Now())
	seeder.ServicesPerTruck = envInt("SEED_SERVICES_PER_TRUCK", seeder.ServicesPerTruck)

	log.WithFields(log.Fields{
		"fleet_size":         fleetSize,
		"api_url":            cfg.APIURL,
		"services_per_truck": seeder.ServicesPerTruck,
	}).Info("Starting demo data seeding")

	sum, err := seeder.Run(ctx, fleetSize)
	log.WithFields(log.Fields{
		"trucks":       sum.Trucks,
		"services":     sum.Services,
		"materials":    sum.Materials,
		"measurements": sum.Measurements,
	}).Info("Seeding finished")
	if err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}
