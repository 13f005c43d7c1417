package catalog

import "github.com/hdtbpedro/web-shop-direct/internal/domain"

// seedProducts builds the catalog installed on first run, when the store
// holds no products yet.
func seedProducts(newID func() string) []domain.Product {
	return []domain.Product{
		{
			ID:          newID(),
			SKU:         "SKU-NEBULA-01",
			Name:        "Camiseta Nebula",
			Description: "Tecido premium com estampa galáctica.",
			Price:       129.9,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1548883354-7622d03aca29?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			ID:          newID(),
			SKU:         "SKU-AURORA-02",
			Name:        "Tênis Aurora",
			Description: "Conforto máximo com visual futurista.",
			Price:       399.0,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			ID:          newID(),
			SKU:         "SKU-ORION-03",
			Name:        "Mochila Orion",
			Description: "Resistente e espaçosa para o dia a dia.",
			Price:       249.5,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1520256862855-398228c41684?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			ID:          newID(),
			SKU:         "SKU-COSMOS-04",
			Name:        "Relógio Cosmos",
			Description: "Design minimalista com precisão.",
			Price:       549.9,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1523275335684-37898b6baf30?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			ID:          newID(),
			SKU:         "SKU-PULSAR-05",
			Name:        "Fone Pulsar",
			Description: "Som imersivo e cancelamento de ruído.",
			Price:       699.0,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1518441902113-c1d3f4f2f1ff?q=80&w=1200&auto=format&fit=crop"},
		},
		{
			ID:          newID(),
			SKU:         "SKU-NOVA-06",
			Name:        "Jaqueta Nova",
			Description: "Impermeável com corte contemporâneo.",
			Price:       459.0,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1473966968600-fa801b869a1a?q=80&w=1200&auto=format&fit=crop"},
		},
	}
}
