package taxonomy

// SubtypeRule maps a set of keywords to a canonical business type. Rules are
// evaluated in order; the first rule with any matching keyword wins.
type SubtypeRule struct {
	Keywords []string
	Type     BusinessType
}

// Rule holds the keyword tables for one category. A candidate must match at
// least one mandatory keyword and none of the exclusions.
type Rule struct {
	// SearchTerm is the query sent to the external search source when
	// searching this category.
	SearchTerm string

	Mandatory []string
	Exclude   []string
	Subtypes  []SubtypeRule
	Default   BusinessType
}

// GlobalExclusions rejects a candidate regardless of the requested category.
// These are near-universal false positives from broad web scraping:
// technology and web services, telecom carriers, banks and mortgage lenders,
// construction trades, government offices, medical-supply wholesalers, and
// generic distributors.
var GlobalExclusions = []string{
	"web design", "web development", "software", "app development",
	"information technology", "it services", "hosting",
	"telecom", "verizon", "at&t", "t-mobile", "sprint", "cell phone carrier",
	"banking", "credit union", "mortgage", "lending", "payday loan",
	"construction company", "general contractor", "excavating",
	"concrete contractor", "paving contractor",
	"government", "city of", "county of", "department of", "dmv",
	"post office", "courthouse",
	"medical supply", "medical equipment",
	"wholesale", "distributor", "distribution center",
}

// categoryRules is the per-category keyword table. Subtype order is
// semantically meaningful: first match wins.
var categoryRules = map[Category]Rule{
	CategoryHealthcare: {
		SearchTerm: "medical clinic",
		Mandatory: []string{
			"dental", "dentist", "orthodont", "medical", "clinic", "doctor",
			"physician", "chiroprac", "therapy", "health", "urgent care",
			"pediatric", "dermatolog", "optometr", "eye care", "veterinar",
			"animal hospital",
		},
		Exclude: []string{
			"health insurance", "medical billing", "medical transcription",
			"pharmaceutical",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"dental", "dentist", "orthodont"}, Type: TypeDentalPractice},
			{Keywords: []string{"chiroprac"}, Type: TypeChiropractic},
			{Keywords: []string{"veterinar", "animal hospital"}, Type: TypeVeterinaryClinic},
			{Keywords: []string{"optometr", "eye care", "vision center"}, Type: TypeOptometryPractice},
			{Keywords: []string{"urgent care", "walk-in clinic"}, Type: TypeUrgentCare},
			{Keywords: []string{"physical therapy", "rehab"}, Type: TypePhysicalTherapy},
			{Keywords: []string{"dermatolog", "skin care clinic"}, Type: TypeDermatology},
		},
		Default: TypeMedicalPractice,
	},

	CategoryAutomotive: {
		SearchTerm: "auto repair shop",
		Mandatory: []string{
			"auto", "car", "vehicle", "automotive", "tire", "transmission",
			"brake", "mechanic", "collision", "body shop", "oil change",
			"muffler", "towing",
		},
		Exclude: []string{
			"auto insurance", "car insurance", "auto loan", "auto finance",
			"car rental", "rental car", "auto auction",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"collision", "body shop", "auto body"}, Type: TypeAutoBody},
			{Keywords: []string{"tire"}, Type: TypeTireShop},
			{Keywords: []string{"transmission"}, Type: TypeTransmission},
			{Keywords: []string{"oil change", "quick lube", "lube"}, Type: TypeQuickLube},
			{Keywords: []string{"car wash", "detailing", "detail"}, Type: TypeCarWash},
			{Keywords: []string{"towing", "tow truck"}, Type: TypeTowing},
		},
		Default: TypeAutoRepair,
	},

	CategoryRestaurants: {
		SearchTerm: "restaurant",
		Mandatory: []string{
			"restaurant", "cafe", "coffee", "pizza", "grill", "diner",
			"bakery", "bar", "kitchen", "food", "taco", "sushi", "bbq",
			"barbecue", "deli", "catering", "bistro", "eatery",
		},
		Exclude: []string{
			"food distribut", "restaurant supply", "grocery", "supermarket",
			"food manufactur",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"pizza"}, Type: TypePizzeria},
			{Keywords: []string{"coffee", "cafe", "espresso"}, Type: TypeCoffeeShop},
			{Keywords: []string{"bakery", "pastry", "donut"}, Type: TypeBakery},
			{Keywords: []string{"bar", "pub", "tavern", "brewery", "taproom"}, Type: TypeBarPub},
			{Keywords: []string{"catering"}, Type: TypeCatering},
			{Keywords: []string{"food truck"}, Type: TypeFoodTruck},
		},
		Default: TypeRestaurant,
	},

	CategoryBeauty: {
		SearchTerm: "hair salon",
		Mandatory: []string{
			"salon", "spa", "barber", "nail", "beauty", "hair", "lash",
			"brow", "waxing", "tattoo", "massage", "esthetic",
		},
		Exclude: []string{
			"beauty supply", "salon equipment", "cosmetics manufactur",
			"beauty school",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"barber"}, Type: TypeBarberShop},
			{Keywords: []string{"nail"}, Type: TypeNailSalon},
			{Keywords: []string{"spa", "massage"}, Type: TypeDaySpa},
			{Keywords: []string{"tattoo", "piercing"}, Type: TypeTattooStudio},
			{Keywords: []string{"lash", "brow"}, Type: TypeLashStudio},
		},
		Default: TypeHairSalon,
	},

	CategoryRetail: {
		SearchTerm: "retail store",
		Mandatory: []string{
			"store", "shop", "boutique", "retail", "market", "outlet",
			"clothing", "apparel", "furniture", "jewelry", "gift",
		},
		Exclude: []string{
			"online only", "e-commerce fulfillment", "storage",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"clothing", "apparel", "boutique"}, Type: TypeClothingBoutique},
			{Keywords: []string{"furniture", "mattress"}, Type: TypeFurnitureStore},
			{Keywords: []string{"jewelry", "jeweler"}, Type: TypeJewelryStore},
			{Keywords: []string{"pet "}, Type: TypePetStore},
			{Keywords: []string{"liquor", "wine shop", "wine store"}, Type: TypeLiquorStore},
			{Keywords: []string{"convenience"}, Type: TypeConvenienceStore},
		},
		Default: TypeRetailStore,
	},

	CategoryProfessional: {
		SearchTerm: "professional services firm",
		Mandatory: []string{
			"law", "attorney", "legal", "account", "cpa", "tax", "consult",
			"insurance agency", "real estate", "bookkeep", "notary",
			"marketing", "agency",
		},
		Exclude: []string{
			"law enforcement", "law school", "university", "college",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"law", "attorney", "legal"}, Type: TypeLawFirm},
			{Keywords: []string{"account", "cpa", "tax", "bookkeep"}, Type: TypeAccountingFirm},
			{Keywords: []string{"real estate", "realty", "realtor"}, Type: TypeRealEstateAgency},
			{Keywords: []string{"insurance"}, Type: TypeInsuranceAgency},
			{Keywords: []string{"marketing", "advertis", "branding"}, Type: TypeMarketingAgency},
		},
		Default: TypeConsultingFirm,
	},

	CategoryHomeServices: {
		SearchTerm: "home services",
		Mandatory: []string{
			"plumb", "hvac", "heating", "cooling", "air conditioning",
			"electric", "roof", "landscap", "lawn", "pest", "cleaning",
			"painting", "remodel", "handyman", "garage door", "gutter",
		},
		Exclude: []string{
			"plumbing supply", "electrical supply", "hvac supply",
			"hardware store",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"plumb"}, Type: TypePlumbing},
			{Keywords: []string{"hvac", "heating", "cooling", "air conditioning"}, Type: TypeHVAC},
			{Keywords: []string{"electric"}, Type: TypeElectrical},
			{Keywords: []string{"roof", "gutter"}, Type: TypeRoofing},
			{Keywords: []string{"landscap", "lawn", "tree service"}, Type: TypeLandscaping},
			{Keywords: []string{"pest", "exterminat"}, Type: TypePestControl},
			{Keywords: []string{"cleaning", "maid", "janitorial"}, Type: TypeCleaningService},
		},
		Default: TypeHandymanService,
	},

	CategoryFitness: {
		SearchTerm: "fitness gym",
		Mandatory: []string{
			"gym", "fitness", "yoga", "pilates", "crossfit", "martial arts",
			"karate", "dance", "training", "wellness", "boxing",
		},
		Exclude: []string{
			"gym equipment", "fitness equipment", "sporting goods",
		},
		Subtypes: []SubtypeRule{
			{Keywords: []string{"yoga"}, Type: TypeYogaStudio},
			{Keywords: []string{"pilates"}, Type: TypePilatesStudio},
			{Keywords: []string{"crossfit"}, Type: TypeCrossfitGym},
			{Keywords: []string{"martial arts", "karate", "jiu jitsu", "taekwondo"}, Type: TypeMartialArts},
			{Keywords: []string{"dance"}, Type: TypeDanceStudio},
			{Keywords: []string{"personal train"}, Type: TypePersonalTraining},
		},
		Default: TypeFitnessGym,
	},
}

// RuleFor returns the keyword rule for a category.
func RuleFor(c Category) (Rule, bool) {
	r, ok := categoryRules[c]
	return r, ok
}
