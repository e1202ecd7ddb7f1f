package memory

import "github.com/sobirov-abdujalil/abdujalil-portfolio/internal/domain"

// The catalog below mirrors the published service offering. Prices are
// whole USD; feature timeline texts keep their display form, the leading
// number feeds the duration estimate.

var projectTypes = []domain.ProjectType{
	{
		ID:           domain.ProjectLandingPage,
		Name:         "Landing Page",
		Description:  "Single page website with contact form and basic information",
		BasePrice:    1500,
		BaseDays:     10,
		TimelineText: "1-2 weeks",
		Includes:     []string{"Responsive Design", "Contact Form", "SEO Optimization"},
		Categories:   []domain.FeatureCategoryID{domain.CategoryAuthentication, domain.CategoryContent},
	},
	{
		ID:           domain.ProjectWebApp,
		Name:         "Web Application",
		Description:  "Interactive web application with user authentication and database",
		BasePrice:    5000,
		BaseDays:     35,
		TimelineText: "4-8 weeks",
		Includes:     []string{"User Authentication", "Database Integration", "Admin Dashboard"},
		Categories: []domain.FeatureCategoryID{
			domain.CategoryAuthentication, domain.CategoryPayments,
			domain.CategoryAdmin, domain.CategoryContent,
		},
	},
	{
		ID:           domain.ProjectEcommerce,
		Name:         "E-commerce Store",
		Description:  "Full-featured online store with payment processing and inventory",
		BasePrice:    8000,
		BaseDays:     60,
		TimelineText: "6-12 weeks",
		Includes:     []string{"Product Catalog", "Payment Gateway", "Order Management"},
		Categories: []domain.FeatureCategoryID{
			domain.CategoryAuthentication, domain.CategoryPayments, domain.CategoryAdmin,
		},
	},
}

var featureCategories = []domain.FeatureCategory{
	{
		ID:   domain.CategoryAuthentication,
		Name: "User Authentication",
		Features: []domain.Feature{
			{ID: "basic-auth", CategoryID: domain.CategoryAuthentication, Name: "Basic Login/Register", Description: "Email and password authentication", Price: 800, TimelineText: "3-5 days"},
			{ID: "social-auth", CategoryID: domain.CategoryAuthentication, Name: "Social Media Login", Description: "Google, Facebook, Twitter integration", Price: 600, TimelineText: "2-3 days"},
			{ID: "two-factor", CategoryID: domain.CategoryAuthentication, Name: "Two-Factor Authentication", Description: "SMS or email verification", Price: 500, TimelineText: "2-3 days"},
		},
	},
	{
		ID:   domain.CategoryPayments,
		Name: "Payment Integration",
		Features: []domain.Feature{
			{ID: "stripe-payment", CategoryID: domain.CategoryPayments, Name: "Stripe Payment Gateway", Description: "Credit card processing with Stripe", Price: 1200, TimelineText: "4-6 days"},
			{ID: "paypal-payment", CategoryID: domain.CategoryPayments, Name: "PayPal Integration", Description: "PayPal payment processing", Price: 800, TimelineText: "3-4 days"},
			{ID: "subscription", CategoryID: domain.CategoryPayments, Name: "Subscription Management", Description: "Recurring payment handling", Price: 1500, TimelineText: "5-7 days"},
		},
	},
	{
		ID:   domain.CategoryAdmin,
		Name: "Admin & Management",
		Features: []domain.Feature{
			{ID: "admin-panel", CategoryID: domain.CategoryAdmin, Name: "Admin Dashboard", Description: "Complete admin interface", Price: 2000, TimelineText: "7-10 days"},
			{ID: "user-management", CategoryID: domain.CategoryAdmin, Name: "User Management", Description: "Manage users and permissions", Price: 1000, TimelineText: "4-5 days"},
			{ID: "analytics", CategoryID: domain.CategoryAdmin, Name: "Analytics Dashboard", Description: "Usage statistics and reporting", Price: 1500, TimelineText: "5-7 days"},
		},
	},
	{
		ID:   domain.CategoryContent,
		Name: "Content Management",
		Features: []domain.Feature{
			{ID: "cms", CategoryID: domain.CategoryContent, Name: "Content Management System", Description: "Easy content editing interface", Price: 1800, TimelineText: "6-8 days"},
			{ID: "blog", CategoryID: domain.CategoryContent, Name: "Blog System", Description: "Full-featured blog with categories", Price: 1200, TimelineText: "4-6 days"},
			{ID: "media-library", CategoryID: domain.CategoryContent, Name: "Media Library", Description: "Image and file management", Price: 800, TimelineText: "3-4 days"},
		},
	},
}

var timelineOptions = []domain.TimelineOption{
	{
		ID:                 domain.TimelineUrgent,
		Name:               "Urgent Delivery",
		Description:        "Rush delivery with priority support",
		DurationText:       "50% faster",
		PriceMultiplier:    1.5,
		DurationMultiplier: 0.5,
		Perks:              []string{"Priority development queue", "Daily progress updates", "Dedicated developer assigned"},
	},
	{
		ID:                 domain.TimelineStandard,
		Name:               "Standard Timeline",
		Description:        "Balanced approach with regular updates",
		DurationText:       "Normal timeline",
		PriceMultiplier:    1.0,
		DurationMultiplier: 1.0,
		Perks:              []string{"Regular progress updates", "Standard development process", "Quality assurance testing"},
	},
	{
		ID:                 domain.TimelineFlexible,
		Name:               "Flexible Schedule",
		Description:        "Extended timeline with cost savings",
		DurationText:       "25% longer",
		PriceMultiplier:    0.85,
		DurationMultiplier: 1.25,
		Perks:              []string{"Cost-effective option", "Flexible milestone dates", "Thorough testing phase"},
	},
}

var complexityLevels = []domain.ComplexityInfo{
	{Value: domain.ComplexitySimple, Label: "Simple", Description: "Straightforward implementation with standard patterns", Multiplier: 0.8},
	{Value: domain.ComplexityMedium, Label: "Medium", Description: "Typical business logic and integrations", Multiplier: 1.0},
	{Value: domain.ComplexityComplex, Label: "Complex", Description: "Advanced workflows and custom integrations", Multiplier: 1.4},
	{Value: domain.ComplexityEnterprise, Label: "Enterprise", Description: "Large scale, high availability requirements", Multiplier: 2.0},
}
