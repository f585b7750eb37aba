package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"civilregistry/database"
	"civilregistry/internal/config"
	"civilregistry/internal/logger"
	"civilregistry/internal/repository"
	"civilregistry/internal/services"
	"civilregistry/internal/storage"
	"civilregistry/internal/utils"

	"github.com/sirupsen/logrus"
)

func main() {
	adminCmd := flag.NewFlagSet("admin", flag.ExitOnError)
	adminEmail := adminCmd.String("email", "admin@nira.gov", "Administrator email")
	adminUsername := adminCmd.String("username", "admin", "Administrator username")
	adminPassword := adminCmd.String("password", "", "Administrator password (required)")
	adminName := adminCmd.String("name", "System Administrator", "Administrator full name")

	citizensCmd := flag.NewFlagSet("citizens", flag.ExitOnError)
	numBirths := citizensCmd.Int("births", 20, "Number of sample birth certificates")
	numIDs := citizensCmd.Int("ids", 20, "Number of sample ID card applications")
	numDeaths := citizensCmd.Int("deaths", 10, "Number of sample death records")

	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(".env", "../../.env")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New(cfg.LogLevel, "text")

	ctx := context.Background()

	switch os.Args[1] {
	case "admin":
		adminCmd.Parse(os.Args[2:])
		if *adminPassword == "" {
			log.Fatal("--password is required")
		}
		s := newSeeder(cfg, log)
		user, err := s.users.Create(ctx, adminInput(*adminUsername, *adminEmail, *adminPassword, *adminName))
		if err != nil {
			log.WithError(err).Fatal("failed to create administrator")
		}
		log.WithFields(logrus.Fields{"id": user.ID, "email": user.Email}).Info("administrator created")

	case "citizens":
		citizensCmd.Parse(os.Args[2:])
		s := newSeeder(cfg, log)
		report := s.seedCitizens(ctx, *numBirths, *numIDs, *numDeaths)
		log.WithFields(logrus.Fields{
			"births":  report.births,
			"ids":     report.idCards,
			"deaths":  report.deaths,
			"skipped": report.skipped,
		}).Info("sample records loaded")

	case "clear":
		clearCmd.Parse(os.Args[2:])
		s := newSeeder(cfg, log)
		if err := s.clear(ctx); err != nil {
			log.WithError(err).Fatal("failed to clear seeded records")
		}

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func newSeeder(cfg config.Config, log *logrus.Logger) *seeder {
	db, err := database.ConnectDatabase(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	if err := database.MigrateDatabase(db, log); err != nil {
		log.WithError(err).Fatal("failed to run database migrations")
	}
	photos, err := storage.NewLocalPhotoStore(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("upload directory unavailable")
	}

	// Seeding runs offline, so the stats cache and metrics are left out.
	tokens := utils.NewTokenIssuer(cfg.JWTSecretKey, cfg.JWTTTL)
	return &seeder{
		users:  services.NewUserService(repository.NewUserRepository(db), tokens, nil, log),
		births: services.NewBirthService(repository.NewBirthRepository(db), nil, nil, log),
		ids:    services.NewIDCardService(repository.NewIDCardRepository(db), photos, nil, nil, log),
		deaths: services.NewDeathService(repository.NewDeathRecordRepository(db), nil, log),
		log:    log,
	}
}

func printHelp() {
	fmt.Println("Usage: seed <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  admin     Create an administrator account")
	fmt.Println("            --email, --username, --password (required), --name")
	fmt.Println("  citizens  Load sample birth, ID card and death records")
	fmt.Println("            --births 20 --ids 20 --deaths 10")
	fmt.Println("  clear     Remove every record created by 'citizens'")
	fmt.Println("  help      Show this message")
}
