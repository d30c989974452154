// Package seed loads the Tracker garment catalog into Mongo. The dataset
// mirrors tracker.no's range with margin-adjusted NOK prices.
package seed

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

// Run replaces the product catalog with the seed dataset and returns the
// number of products inserted.
func Run(ctx context.Context, db *mongo.Database) (int, error) {
	products := Products()

	if _, err := db.Collection("products").DeleteMany(ctx, bson.M{}); err != nil {
		return 0, err
	}

	docs := make([]interface{}, 0, len(products))
	now := time.Now().UTC()
	for _, product := range products {
		product.CreatedAt = now
		docs = append(docs, product)
	}

	if _, err := db.Collection("products").InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return len(docs), nil
}

var standardSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

func chestAndBackAreas() []models.PrintArea {
	return []models.PrintArea{
		{Name: "left_chest", NameNo: "Venstre bryst", X: 15, Y: 20, Width: 20, Height: 20, MaxWidthCM: 8, MaxHeightCM: 8},
		{Name: "center_chest", NameNo: "Midt bryst", X: 30, Y: 18, Width: 40, Height: 30, MaxWidthCM: 25, MaxHeightCM: 20},
		{Name: "full_back", NameNo: "Rygg", X: 20, Y: 15, Width: 60, Height: 50, MaxWidthCM: 35, MaxHeightCM: 40},
	}
}

// Products returns the catalog dataset. Every product is returned by value so
// callers can mutate freely.
func Products() []models.Product {
	return []models.Product{
		{
			Name:        "Tracker 1010 Original T-Shirt",
			Slug:        "tracker-1010-original-t-shirt",
			Description: "Klassisk t-skjorte i 100% bomull. Behagelig og slitesterk med god passform. Ideell for trykk og brodering.",
			Category:    "tshirts",
			Brand:       "Tracker",
			BasePrice:   119,
			Variants: []models.ProductVariant{
				{Color: "Hvit", ColorHex: "#FFFFFF", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/1010_00-2.jpg"}},
				{Color: "Sort", ColorHex: "#000000", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/1010_04.jpg"}},
				{Color: "Marine", ColorHex: "#1E3A5F", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/1010_05.jpg"}},
				{Color: "Rød", ColorHex: "#DC2626", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/1010_06.jpg"}},
				{Color: "Kongeblå", ColorHex: "#1D4ED8", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/1010_08.jpg"}},
			},
			PrintMethods: []string{models.MethodPrint, models.MethodEmbroidery},
			PrintAreas:   chestAndBackAreas(),
			Materials:    []string{"100% bomull, 150g/m²"},
			Fit:          "Regular",
			DeliveryDays: 5,
			BestFor:      []string{"event", "team", "promo"},
			MinQuantity:  1,
			Featured:     true,
			Active:       true,
		},
		{
			Name:        "Tracker 1200 Cool Dry T-Shirt",
			Slug:        "tracker-1200-cool-dry-t-shirt",
			Description: "Teknisk trenings t-skjorte med fukttransporterende egenskaper. Perfekt for aktiv bruk og sport.",
			Category:    "tshirts",
			Brand:       "Tracker",
			BasePrice:   149,
			Variants: []models.ProductVariant{
				{Color: "Hvit", ColorHex: "#FFFFFF", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2020/07/1200_00.jpg"}},
				{Color: "Sort", ColorHex: "#000000", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2020/07/1200_04.jpg"}},
				{Color: "Kongeblå", ColorHex: "#1D4ED8", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2020/07/1200_08.jpg"}},
				{Color: "Rød", ColorHex: "#DC2626", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2020/07/1200_06.jpg"}},
			},
			PrintMethods: []string{models.MethodPrint, models.MethodEmbroidery},
			PrintAreas: []models.PrintArea{
				{Name: "left_chest", NameNo: "Venstre bryst", X: 15, Y: 20, Width: 20, Height: 20, MaxWidthCM: 8, MaxHeightCM: 8},
				{Name: "center_chest", NameNo: "Midt bryst", X: 30, Y: 18, Width: 40, Height: 30, MaxWidthCM: 25, MaxHeightCM: 20},
			},
			Materials:    []string{"100% polyester, 135g/m²"},
			Fit:          "Regular",
			DeliveryDays: 5,
			BestFor:      []string{"sport", "team", "trening"},
			MinQuantity:  1,
			Featured:     true,
			Active:       true,
		},
		{
			Name:        "Tracker 2010 Original Pique",
			Slug:        "tracker-2010-original-pique",
			Description: "Klassisk pique polo i 100% bomull. Profesjonell og komfortabel med ribbestrikket krage.",
			Category:    "tshirts",
			Brand:       "Tracker",
			BasePrice:   229,
			Variants: []models.ProductVariant{
				{Color: "Hvit", ColorHex: "#FFFFFF", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/03/2010_00.jpg"}},
				{Color: "Sort", ColorHex: "#000000", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/03/2010_04.jpg"}},
				{Color: "Marine", ColorHex: "#1E3A5F", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/03/2010_05.jpg"}},
				{Color: "Lysblå", ColorHex: "#93C5FD", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/03/2010_09.jpg"}},
			},
			PrintMethods: []string{models.MethodEmbroidery},
			PrintAreas: []models.PrintArea{
				{Name: "left_chest", NameNo: "Venstre bryst", X: 12, Y: 22, Width: 20, Height: 18, MaxWidthCM: 8, MaxHeightCM: 7},
				{Name: "sleeve", NameNo: "Erme", X: 80, Y: 25, Width: 15, Height: 12, MaxWidthCM: 5, MaxHeightCM: 4},
			},
			Materials:    []string{"100% bomull pique, 210g/m²"},
			Fit:          "Classic",
			DeliveryDays: 5,
			BestFor:      []string{"corporate", "event", "hospitality"},
			MinQuantity:  1,
			Featured:     true,
			Active:       true,
		},
		{
			Name:        "Tracker 3065 Original Hood",
			Slug:        "tracker-3065-original-hood",
			Description: "Klassisk hettegenser med kengurulomme og dobbel hette. Myk børstet innside.",
			Category:    "hoodies",
			Brand:       "Tracker",
			BasePrice:   399,
			Variants: []models.ProductVariant{
				{Color: "Sort", ColorHex: "#000000", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/3065_04.jpg"}},
				{Color: "Marine", ColorHex: "#1E3A5F", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/3065_05.jpg"}},
				{Color: "Grå melert", ColorHex: "#9CA3AF", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/3065_03.jpg"}},
			},
			PrintMethods: []string{models.MethodPrint, models.MethodEmbroidery},
			PrintAreas:   chestAndBackAreas(),
			Materials:    []string{"80% bomull / 20% polyester, 300g/m²"},
			Fit:          "Regular",
			DeliveryDays: 7,
			BestFor:      []string{"team", "skole", "event"},
			MinQuantity:  1,
			Featured:     true,
			Active:       true,
		},
		{
			Name:        "Tracker 5040 Original Softshell Jacket",
			Slug:        "tracker-5040-original-softshell-jacket",
			Description: "Vind- og vannavvisende softshelljakke med fleecefôr. Profilbærer for hele året.",
			Category:    "jackets",
			Brand:       "Tracker",
			BasePrice:   699,
			Variants: []models.ProductVariant{
				{Color: "Sort", ColorHex: "#000000", Sizes: append(standardSizes, "3XL"), Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/5040_04.jpg"}},
				{Color: "Marine", ColorHex: "#1E3A5F", Sizes: standardSizes, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/5040_05.jpg"}},
			},
			PrintMethods: []string{models.MethodEmbroidery},
			PrintAreas: []models.PrintArea{
				{Name: "left_chest", NameNo: "Venstre bryst", X: 12, Y: 22, Width: 20, Height: 18, MaxWidthCM: 9, MaxHeightCM: 8},
				{Name: "full_back", NameNo: "Rygg", X: 20, Y: 15, Width: 60, Height: 45, MaxWidthCM: 30, MaxHeightCM: 30},
			},
			Materials:    []string{"96% polyester / 4% elastan, 310g/m²"},
			Fit:          "Regular",
			DeliveryDays: 7,
			BestFor:      []string{"corporate", "workwear", "outdoor"},
			MinQuantity:  1,
			Featured:     false,
			Active:       true,
		},
		{
			Name:        "Tracker 1213 Hi-Vis CoolDry T-Shirt",
			Slug:        "tracker-1213-hi-vis-cooldry-t-shirt",
			Description: "Fluoriserende t-skjorte i synlighetsklasse 2 etter EN ISO20471. Teknisk materiale med god fuktavledning.",
			Category:    "workwear",
			Brand:       "Tracker",
			BasePrice:   199,
			Variants: []models.ProductVariant{
				{Color: "Hi-Vis Gul", ColorHex: "#FACC15", Sizes: []string{"S", "M", "L", "XL", "XXL", "3XL"}, Images: []string{"https://www.tracker.no/wp-content/uploads/2020/07/1213.jpg"}},
				{Color: "Hi-Vis Oransje", ColorHex: "#F97316", Sizes: []string{"S", "M", "L", "XL", "XXL", "3XL"}, Images: []string{"https://www.tracker.no/wp-content/uploads/2020/07/1213_37.jpg"}},
			},
			PrintMethods: []string{models.MethodPrint, models.MethodEmbroidery},
			PrintAreas: []models.PrintArea{
				{Name: "left_chest", NameNo: "Venstre bryst", X: 15, Y: 22, Width: 18, Height: 15, MaxWidthCM: 7, MaxHeightCM: 6},
				{Name: "back", NameNo: "Rygg", X: 25, Y: 20, Width: 50, Height: 35, MaxWidthCM: 25, MaxHeightCM: 18},
			},
			Materials:    []string{"100% polyester, 135g/m²"},
			Fit:          "Regular",
			DeliveryDays: 7,
			BestFor:      []string{"workwear", "safety", "construction"},
			MinQuantity:  1,
			Featured:     false,
			Active:       true,
		},
		{
			Name:        "Tracker 6000 Original Cap",
			Slug:        "tracker-6000-original-cap",
			Description: "Klassisk caps i børstet bomull med justerbar metallspenne. Seks paneler med broderte luftehull.",
			Category:    "caps",
			Brand:       "Tracker",
			BasePrice:   129,
			Variants: []models.ProductVariant{
				{Color: "Sort", ColorHex: "#000000", Sizes: []string{"One Size"}, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/6000_04.jpg"}},
				{Color: "Marine", ColorHex: "#1E3A5F", Sizes: []string{"One Size"}, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/6000_05.jpg"}},
				{Color: "Hvit", ColorHex: "#FFFFFF", Sizes: []string{"One Size"}, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/6000_00.jpg"}},
			},
			PrintMethods: []string{models.MethodEmbroidery},
			PrintAreas: []models.PrintArea{
				{Name: "front", NameNo: "Front", X: 30, Y: 30, Width: 40, Height: 30, MaxWidthCM: 10, MaxHeightCM: 6},
			},
			Materials:    []string{"100% børstet bomull"},
			Fit:          "One Size",
			DeliveryDays: 5,
			BestFor:      []string{"promo", "event", "team"},
			MinQuantity:  1,
			Featured:     false,
			Active:       true,
		},
		{
			Name:        "Tracker 9023 Hard Shell PC-Sekk",
			Slug:        "tracker-9023-hard-shell-pc-sekk",
			Description: "Robust ryggsekk med polstret PC-rom og hardt skall. Vannavvisende materiale.",
			Category:    "accessories",
			Brand:       "Tracker",
			BasePrice:   899,
			Variants: []models.ProductVariant{
				{Color: "Sort", ColorHex: "#000000", Sizes: []string{"One Size"}, Images: []string{"https://www.tracker.no/wp-content/uploads/2021/02/9023.jpg"}},
			},
			PrintMethods: []string{models.MethodPrint, models.MethodEmbroidery},
			PrintAreas: []models.PrintArea{
				{Name: "front", NameNo: "Front", X: 30, Y: 35, Width: 40, Height: 25, MaxWidthCM: 12, MaxHeightCM: 8},
			},
			Materials:    []string{"100% polyester med EVA-skall"},
			Fit:          "One Size",
			DeliveryDays: 7,
			BestFor:      []string{"corporate", "gave", "promo"},
			MinQuantity:  1,
			Featured:     false,
			Active:       true,
		},
	}
}
