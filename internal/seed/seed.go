package seed

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

type seedProduct struct {
	name        string
	description string
	price       float64
	quantity    uint
}

type seedRestaurant struct {
	name        string
	description string
	products    []seedProduct
}

var restaurants = []seedRestaurant{
	{
		"The Green Garden",
		"A vegetarian and vegan-friendly restaurant offering fresh, organic meals and locally-sourced produce.",
		[]seedProduct{
			{"Vegan Buddha Bowl", "A bowl of quinoa, chickpeas, veggies, and tahini.", 9.99, 50},
			{"Avocado Toast", "Whole grain toast topped with smashed avocado and microgreens.", 6.99, 40},
		},
	},
	{
		"Sushi World",
		"Authentic Japanese cuisine specializing in sushi, sashimi, and creative rolls made by expert chefs.",
		[]seedProduct{
			{"California Roll", "Crab, avocado, and cucumber rolled in seaweed and rice.", 8.50, 100},
			{"Salmon Sashimi", "Fresh sliced salmon served with soy and wasabi.", 12.00, 70},
		},
	},
	{
		"Pasta Palace",
		"A cozy Italian spot known for its handmade pasta, rich sauces, and rustic charm.",
		[]seedProduct{
			{"Spaghetti Carbonara", "Classic pasta with pancetta, egg, and parmesan.", 11.99, 60},
			{"Lasagna", "Layers of pasta, beef ragu, and creamy béchamel.", 13.50, 45},
		},
	},
	{
		"Spice Symphony",
		"An Indian restaurant offering a symphony of spices with classic curries, tandoori specialties, and biryani.",
		[]seedProduct{
			{"Chicken Tikka Masala", "Tender chicken in creamy spiced tomato sauce.", 10.99, 80},
			{"Vegetable Biryani", "Fragrant rice with mixed vegetables and spices.", 9.50, 70},
		},
	},
	{
		"Burger Barn",
		"Casual American dining with gourmet burgers, loaded fries, and thick milkshakes.",
		[]seedProduct{
			{"Classic Cheeseburger", "Beef patty with cheddar, lettuce, tomato, and pickles.", 9.99, 120},
			{"Bacon BBQ Burger", "Burger with crispy bacon, BBQ sauce, and onion rings.", 11.50, 90},
		},
	},
	{
		"Taco Fiesta",
		"A vibrant Mexican eatery serving tacos, burritos, and enchiladas with bold flavors and fresh ingredients.",
		[]seedProduct{
			{"Chicken Tacos", "Soft tacos with grilled chicken, salsa, and cheese.", 7.99, 100},
			{"Beef Burrito", "Flour tortilla stuffed with seasoned beef, beans, and rice.", 9.25, 80},
		},
	},
	{
		"Dragon Wok",
		"Traditional Chinese food with modern twists, offering dim sum, stir-fries, and noodle dishes.",
		[]seedProduct{
			{"Kung Pao Chicken", "Spicy stir-fry with chicken, peanuts, and veggies.", 10.50, 60},
			{"Vegetable Spring Rolls", "Crispy rolls filled with mixed vegetables.", 5.50, 150},
		},
	},
	{
		"Mediterranean",
		"Fine Mediterranean dining with dishes inspired by Greek, Turkish, and Lebanese cuisines.",
		[]seedProduct{
			{"Grilled Lamb Kebabs", "Tender lamb skewers with tzatziki sauce.", 14.00, 50},
			{"Greek Salad", "Salad with feta, olives, cucumber, and tomatoes.", 7.00, 80},
		},
	},
	{
		"Ocean's Catch",
		"A seafood grill specializing in fresh catches, grilled platters, and seafood pasta.",
		[]seedProduct{
			{"Grilled Salmon", "Fresh salmon fillet with lemon butter sauce.", 16.99, 40},
			{"Shrimp Alfredo", "Pasta with creamy Alfredo sauce and shrimp.", 15.50, 55},
		},
	},
	{
		"Sweet Tooth Bakery",
		"A delightful bakery and café with a wide selection of cakes, pastries, and artisan coffee.",
		[]seedProduct{
			{"Chocolate Cake", "Rich chocolate cake with ganache frosting.", 5.00, 90},
			{"Blueberry Muffin", "Moist muffin packed with fresh blueberries.", 3.50, 120},
		},
	},
}

// Run loads the starter dataset: one user per role plus ten restaurants with
// two products each, all owned by the owner user. Get-or-create throughout,
// so running it repeatedly creates nothing new.
func Run(gdb *gorm.DB) error {
	users := []struct {
		username string
		email    string
		role     models.Role
	}{
		{"admin", "admin@email.com", models.RoleAdmin},
		{"customer", "customer@email.com", models.RoleCustomer},
		{"courier", "courier@email.com", models.RoleCourier},
		{"owner", "owner@email.com", models.RoleOwner},
	}

	var owner models.User
	for _, u := range users {
		// Seed passwords match the usernames; change them anywhere near
		// production.
		hash, err := bcrypt.GenerateFromPassword([]byte(u.username), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
		}
		res := gdb.Where(models.User{Username: u.username}).FirstOrCreate(&user)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			logrus.Infof("seed: created %s user", u.username)
		}
		if u.role == models.RoleOwner {
			owner = user
		}
	}

	for _, r := range restaurants {
		restaurant := models.Restaurant{
			Name:        r.name,
			Description: r.description,
			OwnerID:     owner.ID,
			OpenHours:   "09:00–22:00",
			IsOpen:      true,
		}
		res := gdb.Where(models.Restaurant{Name: r.name}).FirstOrCreate(&restaurant)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			logrus.Infof("seed: created restaurant %s", r.name)
		}

		for _, p := range r.products {
			product := models.Product{
				RestaurantID: restaurant.ID,
				Name:         p.name,
				Description:  p.description,
				Price:        p.price,
				Quantity:     p.quantity,
				IsAvailable:  true,
			}
			res := gdb.Where(models.Product{RestaurantID: restaurant.ID, Name: p.name}).FirstOrCreate(&product)
			if res.Error != nil {
				return res.Error
			}
		}
	}
	return nil
}
