/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/suparena/retailstore/config"
	"github.com/suparena/retailstore/errors"
	"github.com/suparena/retailstore/models"
	"github.com/suparena/retailstore/queue"
	"github.com/suparena/retailstore/tablestore"
)

// CustomerService implements the customer profile workflows.
type CustomerService struct {
	store  tablestore.TableStore[models.CustomerProfile]
	notify queue.Queue
	cfg    *config.Config
	logger *slog.Logger
}

func (s *CustomerService) ready() error {
	if s.store == nil {
		return errors.ErrUnavailable
	}
	return nil
}

// Create validates and persists a new customer profile, then appends a
// welcome notification. The row key is generated when the caller supplies
// none, and CustomerId defaults to the row key.
func (s *CustomerService) Create(ctx context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	if profile.RowKey == "" {
		profile.RowKey = uuid.NewString()
	}
	if profile.PartitionKey == "" {
		profile.PartitionKey = partitionFor[models.CustomerProfile](models.CustomerPartition)
	}
	if profile.CustomerId == "" {
		profile.CustomerId = profile.RowKey
	}
	profile.RegistrationDate = time.Now().UTC()

	if err := s.store.EnsureTable(ctx); err != nil {
		return nil, mapStoreErr("customers.ensure", err)
	}
	if _, err := s.store.Upsert(ctx, profile, tablestore.InsertOrReplace); err != nil {
		return nil, mapStoreErr("customers.upsert", err)
	}
	s.logger.Info("customer profile created", "row", profile.RowKey)

	now := time.Now().UTC().Format(time.RFC3339)
	sendBestEffort(ctx, s.logger, s.notify, s.cfg.CustomerQueue,
		fmt.Sprintf("Customer created: %s - %s at %s", profile.CustomerId, profile.Name, now))
	sendBestEffort(ctx, s.logger, s.notify, s.cfg.CustomerQueue,
		fmt.Sprintf("Send welcome: %s - %s", profile.CustomerId, profile.Email))
	sendBestEffort(ctx, s.logger, s.notify, s.cfg.CustomerQueue,
		fmt.Sprintf("Validate customer: %s - %s", profile.CustomerId, profile.Email))

	return profile, nil
}

// Edit replaces an existing profile. The caller must pass the profile with
// the ETag it last read; a stale tag fails with a conflict and leaves the
// stored row untouched.
func (s *CustomerService) Edit(ctx context.Context, profile *models.CustomerProfile) (*models.CustomerProfile, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if profile.PartitionKey == "" || profile.RowKey == "" {
		return nil, errors.NewValidationError("RowKey", "existing profile key required")
	}

	profile.RegistrationDate = time.Now().UTC()

	if _, err := s.store.Upsert(ctx, profile, tablestore.ReplaceIfMatch); err != nil {
		return nil, mapStoreErr("customers.replace", err)
	}
	s.logger.Info("customer profile updated", "row", profile.RowKey)
	return profile, nil
}

// Get returns the profile at (partition, row).
func (s *CustomerService) Get(ctx context.Context, partition, row string) (*models.CustomerProfile, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	profile, err := s.store.Get(ctx, partition, row)
	if err != nil {
		return nil, mapStoreErr("customers.get", err)
	}
	return profile, nil
}

// Delete removes the profile at (partition, row). Deleting an absent
// profile succeeds, so repeated deletes observe the same outcome.
func (s *CustomerService) Delete(ctx context.Context, partition, row string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, partition, row); err != nil {
		return mapStoreErr("customers.delete", err)
	}
	s.logger.Info("customer profile deleted", "row", row)
	return nil
}

// List returns every profile in the default partition.
func (s *CustomerService) List(ctx context.Context) ([]models.CustomerProfile, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := s.store.EnsureTable(ctx); err != nil {
		return nil, mapStoreErr("customers.ensure", err)
	}
	profiles, err := s.store.Query(ctx, &tablestore.QueryParams{
		Partition: partitionFor[models.CustomerProfile](models.CustomerPartition),
	})
	if err != nil {
		return nil, mapStoreErr("customers.query", err)
	}
	return profiles, nil
}
