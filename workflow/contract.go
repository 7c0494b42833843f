/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/suparena/retailstore/blobstore"
	"github.com/suparena/retailstore/config"
	"github.com/suparena/retailstore/errors"
)

// contractDirectory is the virtual directory contracts land in within the
// contract container.
const contractDirectory = "dummycontracts"

// ContractService stores uploaded contract documents in the blob container.
type ContractService struct {
	blobs  blobstore.BlobStore
	cfg    *config.Config
	logger *slog.Logger
}

// Upload stores a contract document and returns its locator. The stored
// name carries an upload timestamp so repeated uploads of the same file
// never overwrite each other.
func (s *ContractService) Upload(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	if s.blobs == nil {
		return "", errors.ErrUnavailable
	}
	if len(data) == 0 {
		return "", errors.NewValidationError("File", "please select a file to upload")
	}
	if fileName == "" {
		return "", errors.NewValidationError("File", "file name required")
	}

	if err := s.blobs.EnsureContainer(ctx, s.cfg.ContractContainer); err != nil {
		return "", mapStoreErr("contracts.ensure", err)
	}

	storedName := timestampedName(fileName, time.Now().UTC())
	blobPath := contractDirectory + "/" + storedName

	url, err := s.blobs.Put(ctx, s.cfg.ContractContainer, blobPath, data, contentType)
	if err != nil {
		return "", mapStoreErr("contracts.put", err)
	}
	s.logger.Info("contract uploaded", "file", storedName)
	return url, nil
}

// timestampedName derives the stored file name: base, upload time, original
// extension.
func timestampedName(fileName string, now time.Time) string {
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(path.Base(fileName), ext)
	return fmt.Sprintf("%s_%s%s", base, now.Format("20060102150405"), ext)
}
