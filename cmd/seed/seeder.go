package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"civilregistry/internal/apperrors"
	"civilregistry/internal/models"
	"civilregistry/internal/services"

	"github.com/sirupsen/logrus"
)

// seedPrefix marks every record the seeder creates so clear can find them.
const seedPrefix = "SEED-"

var (
	sampleNames = []string{
		"Ahmed Hassan Mohamed", "Amina Abdi Warsame", "Omar Jama Hussein", "Fadumo Ali Nur",
		"Abdirahman Yusuf Ahmed", "Hodan Farah Ismail", "Mohamed Osman Aden", "Sahra Hirsi Dahir",
	}
	sampleCounties = []string{"Banaadir", "Bay", "Gedo", "Hiiraan", "Jubbada Hoose", "Mudug"}
	samplePlaces   = []string{"Mogadishu", "Baidoa", "Garbahaarey", "Beledweyne", "Kismayo", "Galkayo"}
)

type seeder struct {
	users  *services.UserService
	births *services.BirthService
	ids    *services.IDCardService
	deaths *services.DeathService
	log    logrus.FieldLogger
}

type seedReport struct {
	births, idCards, deaths, skipped int
}

func adminInput(username, email, password, name string) models.RegisterInput {
	return models.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		FullName: name,
		Role:     models.RoleAdmin,
	}
}

// sampleRecord builds the i-th sample submission. Every sample satisfies the
// birth rules: issued at 18 or older, expiring ten years after issue.
func sampleRecord(kind string, i int) models.RecordInput {
	gender := "Male"
	if i%2 == 1 {
		gender = "Female"
	}
	issued := time.Date(2015+i%9, time.Month(1+i%12), 1+i%28, 0, 0, 0, 0, time.UTC)
	return models.RecordInput{
		IDNumber:           fmt.Sprintf("%s%s-%05d", seedPrefix, kind, i),
		FullName:           sampleNames[i%len(sampleNames)],
		DateOfBirth:        issued.AddDate(-(18 + i%40), -(i % 7), 0),
		Gender:             gender,
		PlaceOfBirth:       samplePlaces[i%len(samplePlaces)],
		Nationality:        "Somali",
		ParentSerialNumber: fmt.Sprintf("PS%06d", 100000+i),
		DateOfIssue:        issued,
		DateOfExpiry:       issued.AddDate(10, 0, 0),
		County:             sampleCounties[i%len(sampleCounties)],
		Email:              fmt.Sprintf("citizen%d@example.com", i),
	}
}

// samplePhoto is unique per kind and index so the photo fingerprint never
// collides between samples.
func samplePhoto(kind string, i int) []byte {
	return []byte(fmt.Sprintf("sample-photo:%s:%d", kind, i))
}

func sampleDeath(i int, now time.Time) *models.DeathRecord {
	gender := "Male"
	if i%2 == 1 {
		gender = "Female"
	}
	return &models.DeathRecord{
		SerialNumber: fmt.Sprintf("%sDR-%05d", seedPrefix, i),
		Name:         sampleNames[(i+3)%len(sampleNames)],
		Gender:       gender,
		DateOfDeath:  now.AddDate(0, 0, -i),
		Location:     samplePlaces[i%len(samplePlaces)],
		Reason:       "Natural causes",
	}
}

// seedCitizens loads the samples through the services so they go through
// the same validation as real submissions. Records that already exist are
// skipped, which makes the command safe to rerun.
func (s *seeder) seedCitizens(ctx context.Context, births, idCards, deaths int) seedReport {
	var report seedReport
	skip := func(err error, fields logrus.Fields) {
		if errors.Is(err, apperrors.ErrDuplicateRecord) {
			report.skipped++
			return
		}
		s.log.WithError(err).WithFields(fields).Warn("sample record not created")
	}

	for i := 0; i < births; i++ {
		if _, err := s.births.Submit(ctx, sampleRecord("BC", i), samplePhoto("BC", i)); err != nil {
			skip(err, logrus.Fields{"kind": "birth", "index": i})
			continue
		}
		report.births++
	}
	for i := 0; i < idCards; i++ {
		photo := services.Photo{Data: samplePhoto("ID", i), Name: fmt.Sprintf("sample-%d.jpg", i)}
		if _, err := s.ids.Submit(ctx, sampleRecord("ID", i), photo); err != nil {
			skip(err, logrus.Fields{"kind": "id_card", "index": i})
			continue
		}
		report.idCards++
	}
	now := time.Now()
	for i := 0; i < deaths; i++ {
		if err := s.deaths.Create(ctx, sampleDeath(i, now)); err != nil {
			skip(err, logrus.Fields{"kind": "death", "index": i})
			continue
		}
		report.deaths++
	}
	return report
}

func (s *seeder) clear(ctx context.Context) error {
	births, err := s.births.DeleteByIDNumberPrefix(ctx, seedPrefix)
	if err != nil {
		return fmt.Errorf("clear births: %w", err)
	}
	ids, err := s.ids.DeleteByIDNumberPrefix(ctx, seedPrefix)
	if err != nil {
		return fmt.Errorf("clear id cards: %w", err)
	}
	deaths, err := s.deaths.DeleteBySerialPrefix(ctx, seedPrefix)
	if err != nil {
		return fmt.Errorf("clear deaths: %w", err)
	}
	s.log.WithFields(logrus.Fields{"births": births, "ids": ids, "deaths": deaths}).Info("seeded records removed")
	return nil
}
