package main

import (
	"log"

	"github.com/yakov100/recipe-book-sub000/config"
	"github.com/yakov100/recipe-book-sub000/internal/database"
	"github.com/yakov100/recipe-book-sub000/internal/model"
)

func intPtr(v int) *int { return &v }

var seedRecipes = []model.Recipe{
	{
		Name:            "חומוס ביתי",
		Category:        "סלטים",
		Ingredients:     "גרגירי חומוס\nטחינה גולמית\nלימון\nשום\nכמון\nמלח",
		Instructions:    "להשרות את החומוס ללילה\nלבשל עד ריכוך מלא\nלטחון עם טחינה, לימון ושום\nלתבל ולהגיש עם שמן זית",
		Rating:          4,
		Difficulty:      1,
		PreparationTime: intPtr(90),
	},
	{
		Name:            "מרק עדשים כתומות",
		Category:        "מרקים",
		DietaryType:     "טבעוני",
		Ingredients:     "עדשים כתומות\nבצל\nגזר\nכמון\nמים\nמלח ופלפל",
		Instructions:    "לטגן את הבצל והגזר\nלהוסיף עדשים ומים\nלבשל 25 דקות\nלטחון ולתבל",
		Rating:          5,
		Difficulty:      1,
		PreparationTime: intPtr(40),
	},
	{
		Name:            "עוגת שוקולד",
		Category:        "עוגות",
		Ingredients:     "קמח\nסוכר\nקקאו\nביצים\nשמן\nאבקת אפייה",
		Instructions:    "לערבב את החומרים היבשים\nלהוסיף ביצים ושמן\nלאפות 35 דקות ב-170 מעלות",
		Rating:          5,
		Difficulty:      2,
		PreparationTime: intPtr(50),
	},
	{
		Name:            "שקשוקה",
		Category:        "מנות עיקריות",
		DietaryType:     "צמחוני",
		Ingredients:     "עגבניות\nביצים\nבצל\nפלפל אדום\nפפריקה\nמלח",
		Instructions:    "לטגן בצל ופלפל\nלהוסיף עגבניות ולבשל לרוטב\nליצור גומות ולשבור ביצים\nלכסות עד שהביצים מתייצבות",
		Rating:          4,
		Difficulty:      1,
		PreparationTime: intPtr(25),
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
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	var count int64
	if err := db.Model(&model.Recipe{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count recipes: %v", err)
	}
	if count > 0 {
		log.Printf("Database already holds %d recipes, skipping seed", count)
		return
	}

	for i := range seedRecipes {
		if err := db.Create(&seedRecipes[i]).Error; err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", seedRecipes[i].Name, err)
		}
		log.Printf("Seeded %q", seedRecipes[i].Name)
	}
	log.Printf("Seeded %d recipes", len(seedRecipes))
}
