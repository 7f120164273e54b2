package memory

import (
	"time"

	"pet-care-marketplace/internal/domain/catalog"
	"pet-care-marketplace/internal/domain/providers"

	"github.com/shopspring/decimal"
)

// Seed carga el fixture de dev en los repos in-memory, espejo del dataset
// demo original: categorías, productos, providers con servicios y reviews.
// IDs fijos para poder scriptear contra la API sin listar primero.
func Seed(catalogRepo *CatalogRepo, providersRepo *ProvidersRepo) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	categories := []catalog.Category{
		{ID: "cat-food", Name: "Pet Food", Description: "High-quality nutrition for your pets", Image: "https://images.unsplash.com/photo-1568640347023-a616a30bc3bd", CreatedAt: base},
		{ID: "cat-grooming", Name: "Grooming", Description: "Keep your pets clean and healthy", Image: "https://images.unsplash.com/photo-1516734212186-65266f46771f", CreatedAt: base},
		{ID: "cat-accessories", Name: "Accessories", Description: "Essential accessories for your pets", Image: "https://images.unsplash.com/photo-1576201836106-db1758fd1c97", CreatedAt: base},
		{ID: "cat-healthcare", Name: "Healthcare", Description: "Medical supplies and supplements", Image: "https://images.unsplash.com/photo-1628009368231-7bb7087b1815", CreatedAt: base},
	}
	for _, c := range categories {
		catalogRepo.PutCategory(c)
	}

	products := []catalog.Product{
		{
			ID: "prod-dog-food", Name: "Premium Dog Food",
			Description: "High-quality dry dog food with balanced nutrition",
			Price:       decimal.RequireFromString("999.99"), Stock: 100,
			Images:     []string{"https://images.unsplash.com/photo-1568640347023-a616a30bc3bd"},
			CategoryID: "cat-food",
		},
		{
			ID: "prod-cat-food", Name: "Gourmet Cat Food",
			Description: "Premium wet cat food with real fish",
			Price:       decimal.RequireFromString("799.99"), Stock: 150,
			Images:     []string{"https://images.unsplash.com/photo-1583511655826-05700d52f4d9"},
			CategoryID: "cat-food",
		},
		{
			ID: "prod-grooming-kit", Name: "Professional Grooming Kit",
			Description: "Complete set of grooming tools for dogs and cats",
			Price:       decimal.RequireFromString("1499.99"), Stock: 50,
			Images:     []string{"https://images.unsplash.com/photo-1516734212186-65266f46771f"},
			CategoryID: "cat-grooming",
		},
		{
			ID: "prod-leash", Name: "Adjustable Dog Leash",
			Description: "Durable nylon leash with padded handle",
			Price:       decimal.RequireFromString("349.99"), Stock: 200,
			Images:     []string{"https://images.unsplash.com/photo-1576201836106-db1758fd1c97"},
			CategoryID: "cat-accessories",
		},
		{
			ID: "prod-vitamins", Name: "Pet Multivitamins",
			Description: "Daily supplement for dogs and cats",
			Price:       decimal.RequireFromString("599.99"), Stock: 80,
			Images:     []string{"https://images.unsplash.com/photo-1628009368231-7bb7087b1815"},
			CategoryID: "cat-healthcare",
		},
	}
	for i, p := range products {
		// createdAt escalonado para que el orden newest sea estable
		p.CreatedAt = base.Add(time.Duration(i+1) * time.Hour)
		p.UpdatedAt = p.CreatedAt
		catalogRepo.PutProduct(p)
	}

	provs := []providers.Provider{
		{
			ID: "prov-happy-paws", Name: "Happy Paws Veterinary Clinic", Type: "veterinary",
			Address: "123 Pet Care Lane", Phone: "555-0123", Email: "info@happypaws.example",
			Description: "Full-service veterinary clinic",
		},
		{
			ID: "prov-pawfect", Name: "Pawfect Grooming", Type: "grooming",
			Address: "456 Style Street", Phone: "555-0456", Email: "hello@pawfect.example",
			Description: "Professional grooming salon",
		},
		{
			ID: "prov-walkies", Name: "Walkies Dog Training", Type: "training",
			Address: "789 Park Avenue", Phone: "555-0789", Email: "team@walkies.example",
			Description: "Obedience training and daily walks",
		},
	}
	for i, p := range provs {
		p.CreatedAt = base.Add(time.Duration(i+1) * time.Hour)
		providersRepo.PutProvider(p)
	}

	services := []catalog.CareService{
		{
			ID: "svc-checkup", Name: "General Checkup",
			Description: "Routine health examination",
			Price:       decimal.RequireFromString("1200.00"), DurationMin: 30,
			Type: "veterinary", ProviderID: "prov-happy-paws",
			Provider: catalog.ProviderSummary{ID: "prov-happy-paws", Name: "Happy Paws Veterinary Clinic", Type: "veterinary"},
		},
		{
			ID: "svc-vaccination", Name: "Vaccination",
			Description: "Core vaccines for dogs and cats",
			Price:       decimal.RequireFromString("800.00"), DurationMin: 15,
			Type: "veterinary", ProviderID: "prov-happy-paws",
			Provider: catalog.ProviderSummary{ID: "prov-happy-paws", Name: "Happy Paws Veterinary Clinic", Type: "veterinary"},
		},
		{
			ID: "svc-full-groom", Name: "Full Grooming Session",
			Description: "Bath, haircut, nails and ear cleaning",
			Price:       decimal.RequireFromString("1500.00"), DurationMin: 90,
			Type: "grooming", ProviderID: "prov-pawfect",
			Provider: catalog.ProviderSummary{ID: "prov-pawfect", Name: "Pawfect Grooming", Type: "grooming"},
		},
		{
			ID: "svc-training", Name: "Obedience Training",
			Description: "One-on-one training session",
			Price:       decimal.RequireFromString("1000.00"), DurationMin: 60,
			Type: "training", ProviderID: "prov-walkies",
			Provider: catalog.ProviderSummary{ID: "prov-walkies", Name: "Walkies Dog Training", Type: "training"},
		},
	}
	for i, s := range services {
		s.CreatedAt = base.Add(time.Duration(i+1) * time.Hour)
		catalogRepo.PutService(s)
	}

	// Happy Paws queda con rating 4.0; Walkies queda sin reviews (rating null)
	reviews := []providers.Review{
		{ID: "rev-1", ProviderID: "prov-happy-paws", Rating: 3, Comment: "Good attention"},
		{ID: "rev-2", ProviderID: "prov-happy-paws", Rating: 4, Comment: "Friendly staff"},
		{ID: "rev-3", ProviderID: "prov-happy-paws", Rating: 5, Comment: "Excellent vet"},
		{ID: "rev-4", ProviderID: "prov-pawfect", Rating: 5, Comment: "Milo looks great"},
	}
	for i, rv := range reviews {
		rv.CreatedAt = base.Add(time.Duration(i+1) * time.Minute)
		providersRepo.PutReview(rv)
	}
}
