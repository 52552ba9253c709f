package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/trivima/assetstore/internal/domain/errors"
	"github.com/trivima/assetstore/internal/domain/model"
	testhelpers "github.com/trivima/assetstore/internal/test"
)

func TestCatalogServiceAdd(t *testing.T) {
	repo := testhelpers.NewProductRepositoryStub()
	svc := NewCatalogService(repo)
	svc.now = func() time.Time { return testNow }

	product, err := svc.Add(context.Background(), ProductInput{
		Name:     "  Sci-fi Crate ",
		Category: "props",
		Price:    499,
		Cost:     120,
		Stock:    10,
		Tag:      model.TagHotNew,
		AssetURL: " https://cdn.example.com/crate.zip ",
	})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if product.ID == "" || product.Name != "Sci-fi Crate" || product.AssetType != model.AssetTypeUpload {
		t.Fatalf("unexpected product %+v", product)
	}
	if product.AssetURL != "https://cdn.example.com/crate.zip" || !product.CreatedAt.Equal(testNow) {
		t.Fatalf("unexpected product %+v", product)
	}
	if len(repo.Created) != 1 {
		t.Fatal("expected product stored")
	}
}

func TestCatalogServiceAddValidation(t *testing.T) {
	cases := []struct {
		name string
		in   ProductInput
	}{
		{"missing name", ProductInput{Category: "props"}},
		{"missing category", ProductInput{Name: "Crate"}},
		{"negative price", ProductInput{Name: "Crate", Category: "props", Price: -1}},
		{"negative stock", ProductInput{Name: "Crate", Category: "props", Stock: -1}},
		{"unknown tag", ProductInput{Name: "Crate", Category: "props", Tag: "cheap"}},
		{"unknown asset type", ProductInput{Name: "Crate", Category: "props", AssetType: "ftp"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewCatalogService(testhelpers.NewProductRepositoryStub())
			if _, err := svc.Add(context.Background(), tc.in); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCatalogServiceStock(t *testing.T) {
	repo := testhelpers.NewProductRepositoryStub(model.Product{ID: "p1", Name: "Crate", Stock: 3})
	svc := NewCatalogService(repo)
	ctx := context.Background()

	stock, err := svc.AddStock(ctx, "p1", 4)
	if err != nil || stock != 7 {
		t.Fatalf("expected stock 7, got %d, %v", stock, err)
	}
	stock, err = svc.RemoveStock(ctx, "p1", 10)
	if err != nil || stock != 0 {
		t.Fatalf("expected stock clamped at 0, got %d, %v", stock, err)
	}
	if _, err := svc.AddStock(ctx, "p1", 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.RemoveStock(ctx, "p1", -2); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.AddStock(ctx, "ghost", 1); !errors.Is(err, domainErrors.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCatalogServiceReadAndRemove(t *testing.T) {
	repo := testhelpers.NewProductRepositoryStub(model.Product{ID: "p1", Name: "Crate"})
	svc := NewCatalogService(repo)
	ctx := context.Background()

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list %v, %v", list, err)
	}
	product, err := svc.Get(ctx, "p1")
	if err != nil || product.Name != "Crate" {
		t.Fatalf("unexpected product %v, %v", product, err)
	}
	if err := svc.Remove(ctx, "p1"); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if _, err := svc.Get(ctx, "p1"); !errors.Is(err, domainErrors.ErrProductNotFound) {
		t.Fatalf("expected not found after removal, got %v", err)
	}
}
