package catalog

type seedItem struct {
	name, description string
	price             float64
	unit, image       string
}

type seedCategory struct {
	name  string
	items []seedItem
}

func buildSeed(s Service, categories ...seedCategory) Seed {
	out := Seed{Service: s}
	for _, c := range categories {
		for _, it := range c.items {
			item := ServiceItem{
				Category:    c.name,
				Name:        it.name,
				Description: ptrString(it.description),
				Price:       it.price,
				Unit:        it.unit,
			}
			if item.Unit == "" {
				item.Unit = DefaultUnit
			}
			if it.image != "" {
				item.Image = ptrString(it.image)
			}
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// DefaultSeed returns the stock catalog: regular laundry, dry cleaning,
// express laundry and shoe cleaning.
func DefaultSeed() []Seed {
	return []Seed{
		buildSeed(Service{
			Slug:            "laundry-services",
			Title:           "Regular Laundry Services",
			Description:     "Professional washing and cleaning for everyday clothing",
			FullDescription: ptrString("Our regular laundry service provides thorough cleaning for all your everyday clothing items. We use premium detergents and fabric softeners to ensure your clothes come back fresh, clean, and soft."),
			Rating:          ptrInt(5),
			Reviews:         ptrInt(150),
			Duration:        ptrString("24-48 hours"),
			Image:           ptrString("/placeholder.svg?height=300&width=400&text=Laundry+Service"),
		},
			seedCategory{"men", []seedItem{
				{name: "T-Shirts", price: 3, description: "Cotton t-shirts, polo shirts"},
				{name: "Shirts (Formal)", price: 5, description: "Dress shirts, business shirts"},
				{name: "Pants/Trousers", price: 6, description: "Casual pants, formal trousers"},
				{name: "Jeans", price: 7, description: "Denim jeans, casual wear"},
				{name: "Suits", price: 15, description: "Two-piece suits, blazers"},
				{name: "Underwear", price: 2, description: "Undergarments, socks"},
			}},
			seedCategory{"women", []seedItem{
				{name: "T-Shirts/Tops", price: 3, description: "Casual tops, blouses"},
				{name: "Dresses", price: 8, description: "Casual and formal dresses"},
				{name: "Pants/Jeans", price: 6, description: "Trousers, jeans, leggings"},
				{name: "Skirts", price: 5, description: "Mini, midi, maxi skirts"},
				{name: "Blouses", price: 6, description: "Formal and casual blouses"},
				{name: "Underwear/Lingerie", price: 2, description: "Undergarments, bras"},
			}},
			seedCategory{"children", []seedItem{
				{name: "T-Shirts", price: 2, description: "Kids casual t-shirts"},
				{name: "Pants/Shorts", price: 3, description: "Kids pants and shorts"},
				{name: "Dresses", price: 4, description: "Girls dresses"},
				{name: "School Uniforms", price: 5, description: "School shirts, pants"},
				{name: "Pajamas", price: 3, description: "Sleepwear, nightwear"},
				{name: "Underwear", price: 1, description: "Kids undergarments"},
			}},
		),
		buildSeed(Service{
			Slug:            "dry-cleaning-services",
			Title:           "Dry Cleaning Services",
			Description:     "Specialized dry cleaning for delicate and formal wear",
			FullDescription: ptrString("Professional dry cleaning service for your most delicate and valuable garments. Our expert team uses advanced dry cleaning techniques to preserve fabric quality and extend garment life."),
			Rating:          ptrInt(5),
			Reviews:         ptrInt(89),
			Duration:        ptrString("2-3 days"),
			Image:           ptrString("/placeholder.svg?height=300&width=400&text=Dry+Cleaning"),
		},
			seedCategory{"men", []seedItem{
				{name: "Suits", price: 20, description: "Two-piece business suits"},
				{name: "Blazers", price: 15, description: "Sport coats, blazers"},
				{name: "Dress Shirts", price: 8, description: "Formal dress shirts"},
				{name: "Ties", price: 5, description: "Neckties, bow ties"},
				{name: "Coats/Jackets", price: 25, description: "Winter coats, leather jackets"},
			}},
			seedCategory{"women", []seedItem{
				{name: "Dresses", price: 18, description: "Formal and cocktail dresses"},
				{name: "Blouses", price: 10, description: "Silk and delicate blouses"},
				{name: "Skirts", price: 12, description: "Formal and business skirts"},
				{name: "Coats", price: 30, description: "Winter coats, fur coats"},
				{name: "Evening Gowns", price: 35, description: "Formal evening wear"},
			}},
			seedCategory{"children", []seedItem{
				{name: "Formal Wear", price: 12, description: "Kids formal suits, dresses"},
				{name: "Coats", price: 15, description: "Kids winter coats"},
				{name: "School Blazers", price: 10, description: "School uniform blazers"},
			}},
		),
		buildSeed(Service{
			Slug:            "express-laundry-services",
			Title:           "Express Laundry Services",
			Description:     "Fast turnaround laundry services for urgent needs",
			FullDescription: ptrString("When you need your laundry done quickly, our express service delivers. Choose from various speed options including same-day service for urgent requirements."),
			Rating:          ptrInt(4),
			Reviews:         ptrInt(67),
			Duration:        ptrString("6-24 hours"),
			Image:           ptrString("/placeholder.svg?height=300&width=400&text=Express+Laundry"),
		},
			seedCategory{"wash-and-fold", []seedItem{
				{name: "Express Wash & Fold - 8hrs", unit: "Per KG", price: 60, description: "Fast wash and fold service completed within 8 hours"},
				{name: "Express Wash & Fold - 24hrs", unit: "Per KG", price: 30, description: "Wash and fold service completed within 24 hours"},
				{name: "Normal Wash & Fold", unit: "Per KG", price: 15, description: "Standard wash and fold service"},
			}},
			seedCategory{"wash-and-iron", []seedItem{
				{name: "Express Wash & Iron - 6hrs", unit: "Per KG", price: 80, description: "Fast wash and iron service completed within 6 hours"},
				{name: "Express Wash & Iron - 24hrs", unit: "Per KG", price: 40, description: "Wash and iron service completed within 24 hours"},
				{name: "Normal Wash & Iron", unit: "Per KG", price: 20, description: "Standard wash and iron service"},
			}},
		),
		buildSeed(Service{
			Slug:            "luxury-shoe-cleaning",
			Title:           "Luxury Shoe Cleaning",
			Description:     "Premium shoe cleaning and restoration services",
			FullDescription: ptrString("Specialized cleaning service for your valuable footwear. Our experts restore and maintain shoes using premium products and techniques."),
			Rating:          ptrInt(5),
			Reviews:         ptrInt(45),
			Duration:        ptrString("3-5 days"),
			Image:           ptrString("/placeholder.svg?height=300&width=400&text=Shoe+Cleaning"),
		},
			seedCategory{"men", []seedItem{
				{name: "Men's Leather Shoe Deep Clean", price: 350, image: "/images/shoes/men-leather.jpg", description: "Premium cleaning and conditioning for men's leather shoes to restore shine and remove dirt."},
				{name: "Men's Suede Shoe Treatment", price: 400, image: "/images/shoes/men-suede.jpg", description: "Gentle suede cleaning to remove stains while preserving texture and color."},
				{name: "Men's Sneakers Restoration", price: 300, image: "/images/shoes/men-sneakers.jpg", description: "Deep cleaning and whitening for men's sneakers, removing dirt and yellowing."},
			}},
			seedCategory{"women", []seedItem{
				{name: "Women's High Heel Cleaning", price: 380, image: "/images/shoes/women-heels.jpg", description: "Specialized cleaning for delicate high heels and designer shoes."},
				{name: "Women's Suede Boot Care", price: 420, image: "/images/shoes/women-suede-boots.jpg", description: "Luxury treatment for suede boots, including stain removal and texture preservation."},
				{name: "Women's Designer Sneakers Cleaning", price: 350, image: "/images/shoes/women-sneakers.jpg", description: "Gentle yet effective cleaning for premium women's sneakers."},
			}},
			seedCategory{"children", []seedItem{
				{name: "Kids' School Shoe Cleaning", price: 250, image: "/images/shoes/kids-school.jpg", description: "Durable and safe cleaning for children's school shoes."},
				{name: "Kids' Sports Shoes Cleaning", price: 220, image: "/images/shoes/kids-sports.jpg", description: "Deep cleaning for children's sports and activity shoes."},
				{name: "Kids' Party Shoes Shine", price: 260, image: "/images/shoes/kids-party.jpg", description: "Gentle cleaning for kids' formal and party shoes."},
			}},
		),
	}
}
