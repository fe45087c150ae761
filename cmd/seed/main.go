package main

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/recipe-saver/backend/config"
	"github.com/recipe-saver/backend/internal/database"
	"github.com/recipe-saver/backend/internal/model"
	"github.com/recipe-saver/backend/internal/service"
)

type seedRecipe struct {
	recipe     model.Recipe
	categories []model.Category
}

func mins(n int) *int { return &n }

var seedRecipes = []seedRecipe{
	{
		recipe: model.Recipe{
			Title:       "Creamy Tuscan Chicken",
			Description: "Pan-seared chicken breasts in a sun-dried tomato and spinach cream sauce.",
			Instructions: model.JSONBStringArray{
				"Season the chicken breasts with salt and pepper.",
				"Sear the chicken in olive oil until golden, about 5 minutes per side, then set aside.",
				"Cook the garlic and sun-dried tomatoes in the same pan for 1 minute.",
				"Add the cream and parmesan and simmer until slightly thickened.",
				"Stir in the spinach, return the chicken to the pan and simmer 5 more minutes.",
			},
			PrepTimeMins:  mins(10),
			CookTimeMins:  mins(25),
			TotalTimeMins: mins(35),
			Servings:      "4",
			Difficulty:    "medium",
			Ingredients: []model.Ingredient{
				{Quantity: "4", Name: "chicken breasts"},
				{Quantity: "1", Unit: "cup", Name: "heavy cream"},
				{Quantity: "1/2", Unit: "cup", Name: "sun-dried tomatoes", Preparation: "chopped"},
				{Quantity: "2", Unit: "cups", Name: "baby spinach"},
				{Quantity: "1/2", Unit: "cup", Name: "parmesan", Preparation: "grated"},
				{Quantity: "3", Unit: "cloves", Name: "garlic", Preparation: "minced"},
			},
			Tags: []model.Tag{{Tag: "chicken"}, {Tag: "one-pan"}},
		},
		categories: []model.Category{
			{Name: "chicken", Type: "protein"},
			{Name: "dinner", Type: "course"},
			{Name: "italian", Type: "cuisine"},
			{Name: "30-60m", Type: "time"},
		},
	},
	{
		recipe: model.Recipe{
			Title:       "One-Pot Chickpea Curry",
			Description: "A weeknight coconut chickpea curry that needs only pantry staples.",
			Instructions: model.JSONBStringArray{
				"Soften the onion in oil over medium heat, about 5 minutes.",
				"Add the garlic, ginger and curry powder and cook until fragrant.",
				"Stir in the chickpeas, tomatoes and coconut milk.",
				"Simmer uncovered for 15 minutes, then season with salt and lime juice.",
				"Serve over rice with fresh cilantro.",
			},
			PrepTimeMins:  mins(10),
			CookTimeMins:  mins(20),
			TotalTimeMins: mins(30),
			Servings:      "4",
			Difficulty:    "easy",
			Ingredients: []model.Ingredient{
				{Quantity: "2", Unit: "cans", Name: "chickpeas", Preparation: "drained"},
				{Quantity: "1", Unit: "can", Name: "coconut milk"},
				{Quantity: "1", Unit: "can", Name: "diced tomatoes"},
				{Quantity: "1", Name: "onion", Preparation: "diced"},
				{Quantity: "2", Unit: "tbsp", Name: "curry powder"},
				{Quantity: "1", Unit: "tbsp", Name: "ginger", Preparation: "grated"},
			},
			Tags: []model.Tag{{Tag: "vegan"}, {Tag: "curry"}},
		},
		categories: []model.Category{
			{Name: "vegan", Type: "dietary"},
			{Name: "dinner", Type: "course"},
			{Name: "indian", Type: "cuisine"},
			{Name: "one-pot", Type: "method"},
			{Name: "15-30m", Type: "time"},
		},
	},
	{
		recipe: model.Recipe{
			Title:       "Peanut Butter Overnight Oats",
			Description: "No-cook breakfast oats assembled the night before.",
			Instructions: model.JSONBStringArray{
				"Stir the oats, milk, yogurt, peanut butter and maple syrup together in a jar.",
				"Refrigerate overnight, or at least 4 hours.",
				"Top with sliced banana before serving.",
			},
			PrepTimeMins:  mins(5),
			TotalTimeMins: mins(5),
			Servings:      "1",
			Difficulty:    "easy",
			Ingredients: []model.Ingredient{
				{Quantity: "1/2", Unit: "cup", Name: "rolled oats"},
				{Quantity: "1/2", Unit: "cup", Name: "milk"},
				{Quantity: "2", Unit: "tbsp", Name: "peanut butter"},
				{Quantity: "1", Unit: "tbsp", Name: "maple syrup"},
				{Quantity: "1", Name: "banana", Preparation: "sliced"},
			},
			Tags: []model.Tag{{Tag: "meal-prep"}, {Tag: "breakfast"}},
		},
		categories: []model.Category{
			{Name: "vegetarian", Type: "dietary"},
			{Name: "breakfast", Type: "course"},
			{Name: "no-cook", Type: "method"},
			{Name: "under-15m", Type: "time"},
		},
	},
	{
		recipe: model.Recipe{
			Title:       "Slow Cooker Beef Chili",
			Description: "Deep, smoky chili that cooks itself while you are out.",
			Instructions: model.JSONBStringArray{
				"Brown the beef in a skillet and drain off the fat.",
				"Transfer to the slow cooker with the beans, tomatoes, onion and spices.",
				"Cook on low for 7 hours.",
				"Taste, adjust salt, and serve with shredded cheddar.",
			},
			PrepTimeMins:  mins(15),
			CookTimeMins:  mins(420),
			TotalTimeMins: mins(435),
			Servings:      "6",
			Difficulty:    "easy",
			VideoURL:      "https://www.youtube.com/watch?v=kX3mB5dQe1o",
			VideoPlatform: "youtube",
			Ingredients: []model.Ingredient{
				{Quantity: "2", Unit: "lbs", Name: "ground beef"},
				{Quantity: "2", Unit: "cans", Name: "kidney beans", Preparation: "drained"},
				{Quantity: "1", Unit: "can", Name: "crushed tomatoes"},
				{Quantity: "1", Name: "onion", Preparation: "diced"},
				{Quantity: "3", Unit: "tbsp", Name: "chili powder"},
				{Quantity: "1", Unit: "tsp", Name: "smoked paprika"},
			},
			Tags: []model.Tag{{Tag: "chili"}, {Tag: "batch-cooking"}},
		},
		categories: []model.Category{
			{Name: "beef", Type: "protein"},
			{Name: "dinner", Type: "course"},
			{Name: "american", Type: "cuisine"},
			{Name: "slow-cooker", Type: "method"},
			{Name: "over-60m", Type: "time"},
		},
	},
	{
		recipe: model.Recipe{
			Title:       "Lemon Garlic Salmon",
			Description: "Salmon fillets roasted with lemon, garlic and butter.",
			Instructions: model.JSONBStringArray{
				"Heat the oven to 400F and line a sheet pan with parchment.",
				"Whisk the melted butter, lemon juice, garlic and honey together.",
				"Arrange the salmon on the pan and brush with the butter mixture.",
				"Roast for 12 minutes, until the salmon flakes easily.",
			},
			PrepTimeMins:  mins(8),
			CookTimeMins:  mins(12),
			TotalTimeMins: mins(20),
			Servings:      "4",
			Difficulty:    "easy",
			Ingredients: []model.Ingredient{
				{Quantity: "4", Name: "salmon fillets"},
				{Quantity: "3", Unit: "tbsp", Name: "butter", Preparation: "melted"},
				{Quantity: "1", Name: "lemon", Preparation: "juiced"},
				{Quantity: "3", Unit: "cloves", Name: "garlic", Preparation: "minced"},
				{Quantity: "1", Unit: "tbsp", Name: "honey"},
			},
			Tags: []model.Tag{{Tag: "salmon"}, {Tag: "weeknight"}},
		},
		categories: []model.Category{
			{Name: "fish", Type: "protein"},
			{Name: "dinner", Type: "course"},
			{Name: "baking", Type: "method"},
			{Name: "15-30m", Type: "time"},
		},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, seed := range seedRecipes {
		var count int64
		if err := db.Model(&model.Recipe{}).Where("title = ?", seed.recipe.Title).Count(&count).Error; err != nil {
			log.Fatalf("Failed to check for existing recipe: %v", err)
		}
		if count > 0 {
			skipped++
			continue
		}

		categoryIDs := make([]uuid.UUID, 0, len(seed.categories))
		for _, cat := range seed.categories {
			found := model.Category{Name: cat.Name, Type: cat.Type}
			if err := db.FirstOrCreate(&found, model.Category{Name: cat.Name, Type: cat.Type}).Error; err != nil {
				log.Fatalf("Failed to ensure category %s/%s: %v", cat.Type, cat.Name, err)
			}
			categoryIDs = append(categoryIDs, found.ID)
		}

		recipe := seed.recipe
		if _, err := recipes.CreateRecipe(ctx, &recipe, categoryIDs); err != nil {
			log.Fatalf("Failed to save recipe %q: %v", seed.recipe.Title, err)
		}
		log.Printf("Created recipe: %s", recipe.Title)
		created++
	}

	log.Printf("Seeding complete: %d created, %d skipped", created, skipped)
}
