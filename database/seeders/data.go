package seeders

import (
	"github.com/shopspring/decimal"

	"github.com/logimart/storefront/app/models"
)

// Credential is a demo login. Profiles are matched against these by id
// or email when users are seeded.
type Credential struct {
	Email    string
	Password string
	Role     string
	UserID   int
	Name     string
	Avatar   string
}

func price(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func pricePtr(n int64) *decimal.Decimal {
	d := price(n)
	return &d
}

const (
	avatarJohn  = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=100&q=80"
	avatarJane  = "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=100&q=80"
	avatarAdmin = "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=100&q=80"
	avatarTech  = "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=100&q=80"
	avatarShop  = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&q=80"
)

// Credentials returns the demo logins.
func Credentials() []Credential {
	return []Credential{
		{Email: "customer@example.com", Password: "customer123", Role: models.RoleCustomer, UserID: 1, Name: "John Doe", Avatar: avatarJohn},
		{Email: "jane@example.com", Password: "customer123", Role: models.RoleCustomer, UserID: 2, Name: "Jane Smith", Avatar: avatarJane},
		{Email: "admin@logimart.com", Password: "admin123", Role: models.RoleAdmin, UserID: 5, Name: "Jeel Patel", Avatar: avatarAdmin},
		{Email: "seller@techstore.com", Password: "seller123", Role: models.RoleSeller, UserID: 1, Name: "TechStore Pro", Avatar: avatarTech},
		{Email: "seller@gadgethub.com", Password: "seller123", Role: models.RoleSeller, UserID: 2, Name: "GadgetHub", Avatar: avatarShop},
		{Email: "seller@dell.com", Password: "seller123", Role: models.RoleSeller, UserID: 3, Name: "Dell Store", Avatar: avatarShop},
		{Email: "seller@google.com", Password: "seller123", Role: models.RoleSeller, UserID: 4, Name: "Google Store", Avatar: avatarShop},
	}
}

// Profiles returns the baseline user profiles, without passwords.
func Profiles() []models.User {
	return []models.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: models.RoleCustomer, Avatar: avatarJohn, JoinDate: "2024-01-15", OrdersCount: 3, TotalSpent: pricePtr(259780), Status: models.StatusActive},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: models.RoleCustomer, Avatar: avatarJane, JoinDate: "2024-01-20", OrdersCount: 1, TotalSpent: pricePtr(29990), Status: models.StatusActive},
		{ID: 3, Name: "TechStore Pro", Email: "seller@techstore.com", Role: models.RoleSeller, Avatar: avatarTech, JoinDate: "2023-12-01", ProductsCount: 2, TotalEarnings: pricePtr(189890), Status: models.StatusActive},
		{ID: 4, Name: "GadgetHub", Email: "seller@gadgethub.com", Role: models.RoleSeller, Avatar: avatarShop, JoinDate: "2023-11-15", ProductsCount: 1, TotalEarnings: pricePtr(106999), Status: models.StatusActive},
		{ID: 5, Name: "Admin User", Email: "admin@logimart.com", Role: models.RoleAdmin, Avatar: avatarAdmin, JoinDate: "2023-01-01", Status: models.StatusActive},
	}
}

// Products returns the baseline catalog.
func Products() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "iPhone 15 Pro Max",
			Description: "The most advanced iPhone with Pro camera system and titanium design",
			Price:       price(159900), OriginalPrice: price(169900), Discount: 6,
			Category: "smartphones", Brand: "Apple", Stock: 25,
			Image:  "https://images.unsplash.com/photo-1592286927505-1def25115558?w=400&q=80",
			Rating: 4.8, Reviews: 1247, SellerID: 1, Status: models.ProductActive,
			Features: []string{"5G", "Face ID", "Wireless Charging", "Titanium Design"},
		},
		{
			ID: 2, Name: "Samsung Galaxy S24 Ultra",
			Description: "Premium Android smartphone with S Pen and exceptional camera",
			Price:       price(129999), OriginalPrice: price(139999), Discount: 7,
			Category: "smartphones", Brand: "Samsung", Stock: 15,
			Image:  "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=400&q=80",
			Rating: 4.6, Reviews: 892, SellerID: 2, Status: models.ProductActive,
			Features: []string{"5G", "S Pen", "120Hz Display", "AI Features"},
		},
		{
			ID: 3, Name: "MacBook Pro 16-inch M3",
			Description: "Powerful laptop with M3 chip and stunning Liquid Retina XDR display",
			Price:       price(249900), OriginalPrice: price(269900), Discount: 7,
			Category: "laptops", Brand: "Apple", Stock: 0,
			Image:  "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400&q=80",
			Rating: 4.9, Reviews: 423, SellerID: 1, Status: models.ProductOutOfStock,
			Features: []string{"M3 Chip", "16-inch Display", "18GB RAM", "1TB SSD"},
		},
		{
			ID: 4, Name: "Dell XPS 13 Plus",
			Description: "Ultra-portable laptop with stunning OLED display and Intel i7",
			Price:       price(149900), OriginalPrice: price(159900), Discount: 6,
			Category: "laptops", Brand: "Dell", Stock: 12,
			Image:  "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?w=400&q=80",
			Rating: 4.3, Reviews: 234, SellerID: 3, Status: models.ProductActive,
			Features: []string{"Intel i7", "13.4-inch OLED", "16GB RAM", "512GB SSD"},
		},
		{
			ID: 5, Name: "Sony WH-1000XM5",
			Description: "Industry-leading noise cancelling wireless headphones",
			Price:       price(29990), OriginalPrice: price(34990), Discount: 14,
			Category: "headphones", Brand: "Sony", Stock: 30,
			Image:  "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&q=80",
			Rating: 4.7, Reviews: 1567, SellerID: 2, Status: models.ProductActive,
			Features: []string{"Noise Cancelling", "30hr Battery", "Wireless", "Hi-Res Audio"},
		},
		{
			ID: 6, Name: "Google Pixel 8 Pro",
			Description: "AI-powered smartphone with exceptional camera and 7 years updates",
			Price:       price(106999), OriginalPrice: price(116999), Discount: 8,
			Category: "smartphones", Brand: "Google", Stock: 18,
			Image:  "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&q=80",
			Rating: 4.4, Reviews: 567, SellerID: 4, Status: models.ProductActive,
			Features: []string{"5G", "AI Features", "7 Years Updates", "Magic Eraser"},
		},
	}
}

// Categories returns the baseline categories.
func Categories() []models.Category {
	return []models.Category{
		{ID: 1, Name: "Smartphones", Slug: "smartphones", Count: 3},
		{ID: 2, Name: "Laptops", Slug: "laptops", Count: 2},
		{ID: 3, Name: "Headphones", Slug: "headphones", Count: 1},
		{ID: 4, Name: "Tablets", Slug: "tablets", Count: 0},
		{ID: 5, Name: "Accessories", Slug: "accessories", Count: 0},
	}
}

var (
	addrJohn = models.ShippingAddress{Name: "John Doe", Address: "123 Main St, Mumbai, Maharashtra 400001", Phone: "+91 9876543210"}
	addrJane = models.ShippingAddress{Name: "Jane Smith", Address: "456 Oak Ave, Delhi, Delhi 110001", Phone: "+91 9876543211"}
	addrTech = models.ShippingAddress{Name: "TechStore Pro", Address: "789 Business Park, Bangalore, Karnataka 560001", Phone: "+91 9876543212"}
)

// Orders returns the baseline order history, oldest first.
func Orders() []models.Order {
	return []models.Order{
		{
			ID: "ORD001", UserID: 1, UserName: "John Doe", UserEmail: "john@example.com",
			Items: []models.OrderItem{
				{ProductID: 1, Name: "iPhone 15 Pro Max", Quantity: 1, Price: price(159900), SellerID: 1},
				{ProductID: 5, Name: "Sony WH-1000XM5", Quantity: 1, Price: price(29990), SellerID: 2},
			},
			Total: price(189890), Status: models.OrderDelivered, Date: "2024-01-15",
			ShippingAddress: addrJohn, PaymentMethod: models.PayCard,
		},
		{
			ID: "ORD002", UserID: 2, UserName: "Jane Smith", UserEmail: "jane@example.com",
			Items: []models.OrderItem{
				{ProductID: 5, Name: "Sony WH-1000XM5", Quantity: 1, Price: price(29990), SellerID: 2},
			},
			Total: price(29990), Status: models.OrderShipped, Date: "2024-01-20",
			ShippingAddress: addrJane, PaymentMethod: models.PayUPI,
		},
		{
			ID: "ORD003", UserID: 1, UserName: "John Doe", UserEmail: "john@example.com",
			Items: []models.OrderItem{
				{ProductID: 3, Name: "MacBook Pro 16-inch M3", Quantity: 1, Price: price(249900), SellerID: 1},
			},
			Total: price(249900), Status: models.OrderProcessing, Date: "2024-01-25",
			ShippingAddress: addrJohn, PaymentMethod: models.PayCard,
		},
		{
			ID: "ORD004", UserID: 3, UserName: "TechStore Pro", UserEmail: "seller@techstore.com",
			Items: []models.OrderItem{
				{ProductID: 6, Name: "Google Pixel 8 Pro", Quantity: 1, Price: price(106999), SellerID: 4},
			},
			Total: price(106999), Status: models.OrderPlaced, Date: "2024-01-28",
			ShippingAddress: addrTech, PaymentMethod: models.PayCOD,
		},
	}
}
