package search

// Site describes how to query one recipe site and read its result markup.
// SearchURL takes the escaped query; BaseURL resolves relative hrefs where a
// site serves them.
type Site struct {
	Name           string
	SearchURL      string
	ResultSelector string
	TitleSelector  string
	BaseURL        string
}

// Sites are the recipe databases worth searching when a video names a dish
// but never links the recipe.
var Sites = []Site{
	{
		Name:           "AllRecipes",
		SearchURL:      "https://www.allrecipes.com/search?q=%s",
		ResultSelector: "a.mntl-card-list-card",
		TitleSelector:  "span.card__title-text",
	},
	{
		Name:           "Food Network",
		SearchURL:      "https://www.foodnetwork.com/search/%s-",
		ResultSelector: "div.o-RecipeResult a.o-RecipeResult__a-ResultLink",
		TitleSelector:  "span.o-RecipeResult__a-ResultTitle",
		BaseURL:        "https://www.foodnetwork.com",
	},
	{
		Name:           "Tasty",
		SearchURL:      "https://tasty.co/search?q=%s",
		ResultSelector: "a.feed-item",
		TitleSelector:  "div.feed-item__title",
		BaseURL:        "https://tasty.co",
	},
	{
		Name:           "Delish",
		SearchURL:      "https://www.delish.com/search/?q=%s",
		ResultSelector: "a.result-link",
		TitleSelector:  "span.result-title",
	},
	{
		Name:           "Food.com",
		SearchURL:      "https://www.food.com/search/%s",
		ResultSelector: "article.recipe-card a",
		TitleSelector:  "h2",
		BaseURL:        "https://www.food.com",
	},
	{
		Name:           "Epicurious",
		SearchURL:      "https://www.epicurious.com/search?q=%s",
		ResultSelector: "a.view-complete-item",
		TitleSelector:  "h4",
		BaseURL:        "https://www.epicurious.com",
	},
}
