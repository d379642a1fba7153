package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"styllobarber-pdv/internal/model"
	"styllobarber-pdv/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// categoryResolver finds a category by (name, kind), creating it on first use.
type categoryResolver struct {
	repo  repository.CategoryRepository
	log   logrus.FieldLogger
	color func() string
}

func newCategoryResolver(repo repository.CategoryRepository, log logrus.FieldLogger) *categoryResolver {
	return &categoryResolver{
		repo: repo,
		log:  log,
		color: func() string {
			return model.CategoryPalette[rand.Intn(len(model.CategoryPalette))]
		},
	}
}

// Resolve never fails the caller: any problem is logged and nil is returned.
func (r *categoryResolver) Resolve(ctx context.Context, name string, kind model.TransactionKind, actorID string) *uuid.UUID {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	log := r.log.WithFields(logrus.Fields{"category": name, "kind": kind})

	existing, err := r.repo.FindByNameAndKind(ctx, name, kind)
	if err == nil {
		return &existing.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Warn("PDV.ResolveCategory")
		return nil
	}

	category := &model.Category{Name: name, Kind: kind, Color: r.color()}
	category.ID = uuid.New()
	category.CreatedBy = actorID
	category.UpdatedBy = actorID
	if err := r.repo.Create(ctx, category); err != nil {
		// Another request may have created it in the meantime.
		if existing, findErr := r.repo.FindByNameAndKind(ctx, name, kind); findErr == nil {
			return &existing.ID
		}
		log.WithError(err).Warn("PDV.ResolveCategory: create failed")
		return nil
	}

	log.WithField("category_id", category.ID).Info("PDV.ResolveCategory: created")
	return &category.ID
}
