package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"ride-assignment-service/internal/api/dto"
	"ride-assignment-service/internal/domain"
)

// FileFleetRepository reads drivers and rides from JSON files on every call,
// so edits show up on the next assignment run without a restart.
type FileFleetRepository struct {
	DriversPath string
	RidesPath   string
}

func NewFileFleetRepository(driversPath, ridesPath string) *FileFleetRepository {
	return &FileFleetRepository{DriversPath: driversPath, RidesPath: ridesPath}
}

func (f *FileFleetRepository) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	records, err := ReadDriverRecords(f.DriversPath)
	if err != nil {
		return nil, err
	}
	drivers, err := dto.DriversToDomain(records)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %s: %w", f.DriversPath, err)
	}
	return drivers, nil
}

func (f *FileFleetRepository) ListRides(ctx context.Context) ([]domain.Ride, error) {
	records, err := ReadRideRecords(f.RidesPath)
	if err != nil {
		return nil, err
	}
	rides, err := dto.RidesToDomain(records)
	if err != nil {
		return nil, fmt.Errorf("list rides: %s: %w", f.RidesPath, err)
	}
	return rides, nil
}

func ReadDriverRecords(path string) ([]dto.DriverRecord, error) {
	var records []dto.DriverRecord
	if err := readJSON(path, &records); err != nil {
		return nil, fmt.Errorf("read drivers: %w", err)
	}
	return records, nil
}

func ReadRideRecords(path string) ([]dto.RideRecord, error) {
	var records []dto.RideRecord
	if err := readJSON(path, &records); err != nil {
		return nil, fmt.Errorf("read rides: %w", err)
	}
	return records, nil
}

func readJSON(path string, v any) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := json.Unmarshal(bytes, v); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	return nil
}
