// Package taxonomy defines the canonical industry categories, business types,
// and the per-category keyword rules used to classify raw search hits.
package taxonomy

// Category is a top-level industry grouping used to scope search and
// classification.
type Category string

const (
	CategoryHealthcare   Category = "HEALTHCARE"
	CategoryAutomotive   Category = "AUTOMOTIVE_SERVICES"
	CategoryRestaurants  Category = "RESTAURANTS"
	CategoryBeauty       Category = "BEAUTY_PERSONAL_CARE"
	CategoryRetail       Category = "RETAIL"
	CategoryProfessional Category = "PROFESSIONAL_SERVICES"
	CategoryHomeServices Category = "HOME_SERVICES"
	CategoryFitness      Category = "FITNESS_WELLNESS"
)

// BusinessType is a specific sub-classification within a category.
type BusinessType string

const (
	// Healthcare.
	TypeDentalPractice    BusinessType = "DENTAL_PRACTICE"
	TypeChiropractic      BusinessType = "CHIROPRACTIC_CLINIC"
	TypeVeterinaryClinic  BusinessType = "VETERINARY_CLINIC"
	TypeOptometryPractice BusinessType = "OPTOMETRY_PRACTICE"
	TypeUrgentCare        BusinessType = "URGENT_CARE"
	TypePhysicalTherapy   BusinessType = "PHYSICAL_THERAPY"
	TypeDermatology       BusinessType = "DERMATOLOGY_CLINIC"
	TypeMedicalPractice   BusinessType = "MEDICAL_PRACTICE"

	// Automotive services.
	TypeAutoBody     BusinessType = "AUTO_BODY"
	TypeTireShop     BusinessType = "TIRE_SHOP"
	TypeTransmission BusinessType = "TRANSMISSION_REPAIR"
	TypeQuickLube    BusinessType = "QUICK_LUBE"
	TypeCarWash      BusinessType = "CAR_WASH"
	TypeTowing       BusinessType = "TOWING"
	TypeAutoRepair   BusinessType = "AUTO_REPAIR"

	// Restaurants and food service.
	TypePizzeria   BusinessType = "PIZZERIA"
	TypeCoffeeShop BusinessType = "COFFEE_SHOP"
	TypeBakery     BusinessType = "BAKERY"
	TypeBarPub     BusinessType = "BAR_PUB"
	TypeCatering   BusinessType = "CATERING"
	TypeFoodTruck  BusinessType = "FOOD_TRUCK"
	TypeRestaurant BusinessType = "RESTAURANT"

	// Beauty and personal care.
	TypeBarberShop   BusinessType = "BARBER_SHOP"
	TypeNailSalon    BusinessType = "NAIL_SALON"
	TypeDaySpa       BusinessType = "DAY_SPA"
	TypeTattooStudio BusinessType = "TATTOO_STUDIO"
	TypeLashStudio   BusinessType = "LASH_STUDIO"
	TypeHairSalon    BusinessType = "HAIR_SALON"

	// Retail.
	TypeClothingBoutique BusinessType = "CLOTHING_BOUTIQUE"
	TypeFurnitureStore   BusinessType = "FURNITURE_STORE"
	TypeJewelryStore     BusinessType = "JEWELRY_STORE"
	TypePetStore         BusinessType = "PET_STORE"
	TypeLiquorStore      BusinessType = "LIQUOR_STORE"
	TypeConvenienceStore BusinessType = "CONVENIENCE_STORE"
	TypeRetailStore      BusinessType = "RETAIL_STORE"

	// Professional services.
	TypeLawFirm          BusinessType = "LAW_FIRM"
	TypeAccountingFirm   BusinessType = "ACCOUNTING_FIRM"
	TypeRealEstateAgency BusinessType = "REAL_ESTATE_AGENCY"
	TypeInsuranceAgency  BusinessType = "INSURANCE_AGENCY"
	TypeMarketingAgency  BusinessType = "MARKETING_AGENCY"
	TypeConsultingFirm   BusinessType = "CONSULTING_FIRM"

	// Home services.
	TypePlumbing        BusinessType = "PLUMBING"
	TypeHVAC            BusinessType = "HVAC"
	TypeElectrical      BusinessType = "ELECTRICAL"
	TypeRoofing         BusinessType = "ROOFING"
	TypeLandscaping     BusinessType = "LANDSCAPING"
	TypePestControl     BusinessType = "PEST_CONTROL"
	TypeCleaningService BusinessType = "CLEANING_SERVICE"
	TypeHandymanService BusinessType = "HANDYMAN_SERVICE"

	// Fitness and wellness.
	TypeYogaStudio       BusinessType = "YOGA_STUDIO"
	TypePilatesStudio    BusinessType = "PILATES_STUDIO"
	TypeCrossfitGym      BusinessType = "CROSSFIT_GYM"
	TypeMartialArts      BusinessType = "MARTIAL_ARTS_SCHOOL"
	TypeDanceStudio      BusinessType = "DANCE_STUDIO"
	TypePersonalTraining BusinessType = "PERSONAL_TRAINING"
	TypeFitnessGym       BusinessType = "FITNESS_GYM"
)

// typeInfo holds the declared parent category and display name for a type.
type typeInfo struct {
	category Category
	display  string
}

var typeRegistry = map[BusinessType]typeInfo{
	TypeDentalPractice:    {CategoryHealthcare, "Dental Practice"},
	TypeChiropractic:      {CategoryHealthcare, "Chiropractic Clinic"},
	TypeVeterinaryClinic:  {CategoryHealthcare, "Veterinary Clinic"},
	TypeOptometryPractice: {CategoryHealthcare, "Optometry Practice"},
	TypeUrgentCare:        {CategoryHealthcare, "Urgent Care Clinic"},
	TypePhysicalTherapy:   {CategoryHealthcare, "Physical Therapy Practice"},
	TypeDermatology:       {CategoryHealthcare, "Dermatology Clinic"},
	TypeMedicalPractice:   {CategoryHealthcare, "Medical Practice"},

	TypeAutoBody:     {CategoryAutomotive, "Auto Body Shop"},
	TypeTireShop:     {CategoryAutomotive, "Tire Shop"},
	TypeTransmission: {CategoryAutomotive, "Transmission Repair Shop"},
	TypeQuickLube:    {CategoryAutomotive, "Quick Lube"},
	TypeCarWash:      {CategoryAutomotive, "Car Wash"},
	TypeTowing:       {CategoryAutomotive, "Towing Service"},
	TypeAutoRepair:   {CategoryAutomotive, "Auto Repair Shop"},

	TypePizzeria:   {CategoryRestaurants, "Pizzeria"},
	TypeCoffeeShop: {CategoryRestaurants, "Coffee Shop"},
	TypeBakery:     {CategoryRestaurants, "Bakery"},
	TypeBarPub:     {CategoryRestaurants, "Bar / Pub"},
	TypeCatering:   {CategoryRestaurants, "Catering Company"},
	TypeFoodTruck:  {CategoryRestaurants, "Food Truck"},
	TypeRestaurant: {CategoryRestaurants, "Restaurant"},

	TypeBarberShop:   {CategoryBeauty, "Barber Shop"},
	TypeNailSalon:    {CategoryBeauty, "Nail Salon"},
	TypeDaySpa:       {CategoryBeauty, "Day Spa"},
	TypeTattooStudio: {CategoryBeauty, "Tattoo Studio"},
	TypeLashStudio:   {CategoryBeauty, "Lash Studio"},
	TypeHairSalon:    {CategoryBeauty, "Hair Salon"},

	TypeClothingBoutique: {CategoryRetail, "Clothing Boutique"},
	TypeFurnitureStore:   {CategoryRetail, "Furniture Store"},
	TypeJewelryStore:     {CategoryRetail, "Jewelry Store"},
	TypePetStore:         {CategoryRetail, "Pet Store"},
	TypeLiquorStore:      {CategoryRetail, "Liquor Store"},
	TypeConvenienceStore: {CategoryRetail, "Convenience Store"},
	TypeRetailStore:      {CategoryRetail, "Retail Store"},

	TypeLawFirm:          {CategoryProfessional, "Law Firm"},
	TypeAccountingFirm:   {CategoryProfessional, "Accounting Firm"},
	TypeRealEstateAgency: {CategoryProfessional, "Real Estate Agency"},
	TypeInsuranceAgency:  {CategoryProfessional, "Insurance Agency"},
	TypeMarketingAgency:  {CategoryProfessional, "Marketing Agency"},
	TypeConsultingFirm:   {CategoryProfessional, "Consulting Firm"},

	TypePlumbing:        {CategoryHomeServices, "Plumbing Company"},
	TypeHVAC:            {CategoryHomeServices, "HVAC Company"},
	TypeElectrical:      {CategoryHomeServices, "Electrical Contractor"},
	TypeRoofing:         {CategoryHomeServices, "Roofing Company"},
	TypeLandscaping:     {CategoryHomeServices, "Landscaping Company"},
	TypePestControl:     {CategoryHomeServices, "Pest Control Service"},
	TypeCleaningService: {CategoryHomeServices, "Cleaning Service"},
	TypeHandymanService: {CategoryHomeServices, "Handyman Service"},

	TypeYogaStudio:       {CategoryFitness, "Yoga Studio"},
	TypePilatesStudio:    {CategoryFitness, "Pilates Studio"},
	TypeCrossfitGym:      {CategoryFitness, "CrossFit Gym"},
	TypeMartialArts:      {CategoryFitness, "Martial Arts School"},
	TypeDanceStudio:      {CategoryFitness, "Dance Studio"},
	TypePersonalTraining: {CategoryFitness, "Personal Training Studio"},
	TypeFitnessGym:       {CategoryFitness, "Fitness Gym"},
}

// TypeCategory returns the declared parent category of a business type.
// The second return is false for unknown types.
func TypeCategory(t BusinessType) (Category, bool) {
	info, ok := typeRegistry[t]
	if !ok {
		return "", false
	}
	return info.category, true
}

// DisplayName returns the human-readable name of a business type, or the raw
// value for unknown types.
func DisplayName(t BusinessType) string {
	if info, ok := typeRegistry[t]; ok {
		return info.display
	}
	return string(t)
}

// ValidCategory reports whether c has a configured rule table.
func ValidCategory(c Category) bool {
	_, ok := categoryRules[c]
	return ok
}

// Categories returns all configured categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryHealthcare,
		CategoryAutomotive,
		CategoryRestaurants,
		CategoryBeauty,
		CategoryRetail,
		CategoryProfessional,
		CategoryHomeServices,
		CategoryFitness,
	}
}

// ParseCategory maps a raw category string to a Category. It accepts the
// canonical tag as-is; anything else fails.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if ValidCategory(c) {
		return c, true
	}
	return "", false
}
