package search

import (
	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/taxonomy"
)

// sampleSeed describes one fallback business.
type sampleSeed struct {
	name        string
	address     string
	phone       string
	website     string
	bType       taxonomy.BusinessType
	rating      float64
	reviewCount int
}

// sampleSeeds holds a small fixed fallback set per category. IDs are
// assigned at response time; attributes are estimated from the seeded
// review signals like any live hit.
var sampleSeeds = map[taxonomy.Category][]sampleSeed{
	taxonomy.CategoryAutomotive: {
		{"Precision Auto Repair", "1412 Industrial Blvd, Austin, TX 78741", "(512) 555-0134", "https://precisionautoatx.example.com", taxonomy.TypeAutoRepair, 4.6, 212},
		{"Eastside Collision Center", "880 E 7th St, Austin, TX 78702", "(512) 555-0178", "", taxonomy.TypeAutoBody, 4.4, 96},
		{"Lone Star Tire & Wheel", "2203 S Lamar Blvd, Austin, TX 78704", "(512) 555-0119", "https://lonestartire.example.com", taxonomy.TypeTireShop, 4.7, 341},
	},
	taxonomy.CategoryHealthcare: {
		{"Bright Smile Family Dental", "301 W Oak St, Denton, TX 76201", "(940) 555-0142", "https://brightsmiledenton.example.com", taxonomy.TypeDentalPractice, 4.8, 189},
		{"Riverside Chiropractic", "47 River Rd, Naperville, IL 60540", "(630) 555-0188", "", taxonomy.TypeChiropractic, 4.5, 77},
		{"Summit Veterinary Clinic", "912 Summit Ave, Boulder, CO 80302", "(303) 555-0115", "https://summitvet.example.com", taxonomy.TypeVeterinaryClinic, 4.9, 256},
	},
	taxonomy.CategoryRestaurants: {
		{"Mama Rosa's Pizzeria", "118 Main St, Hoboken, NJ 07030", "(201) 555-0129", "", taxonomy.TypePizzeria, 4.5, 420},
		{"Blue Door Cafe", "75 Elm St, Portland, ME 04101", "(207) 555-0163", "https://bluedoorcafe.example.com", taxonomy.TypeCoffeeShop, 4.7, 133},
		{"Smokehouse BBQ Kitchen", "2641 Ranch Rd, Lockhart, TX 78644", "(512) 555-0150", "", taxonomy.TypeRestaurant, 4.6, 378},
	},
	taxonomy.CategoryBeauty: {
		{"The Fade Room Barbershop", "509 N High St, Columbus, OH 43215", "(614) 555-0171", "", taxonomy.TypeBarberShop, 4.8, 204},
		{"Lotus Day Spa", "33 Willow Ln, Scottsdale, AZ 85251", "(480) 555-0139", "https://lotusdayspa.example.com", taxonomy.TypeDaySpa, 4.6, 148},
	},
	taxonomy.CategoryRetail: {
		{"Cedar & Pine Boutique", "214 King St, Charleston, SC 29401", "(843) 555-0126", "https://cedarandpine.example.com", taxonomy.TypeClothingBoutique, 4.7, 89},
		{"Harbor Jewelers", "12 Wharf St, Annapolis, MD 21401", "(410) 555-0144", "", taxonomy.TypeJewelryStore, 4.8, 167},
	},
	taxonomy.CategoryProfessional: {
		{"Hartley & Moss CPA", "400 Commerce St, Nashville, TN 37219", "(615) 555-0123", "https://hartleymoss.example.com", taxonomy.TypeAccountingFirm, 4.9, 64},
		{"Lakefront Law Group", "1100 Lakeshore Dr, Chicago, IL 60611", "(312) 555-0187", "", taxonomy.TypeLawFirm, 4.6, 52},
	},
	taxonomy.CategoryHomeServices: {
		{"Rapid Rooter Plumbing", "780 Foundry Rd, Mesa, AZ 85201", "(480) 555-0108", "https://rapidrooter.example.com", taxonomy.TypePlumbing, 4.7, 296},
		{"Comfort Zone Heating & Air", "55 Maple Ave, Cherry Hill, NJ 08002", "(856) 555-0152", "", taxonomy.TypeHVAC, 4.8, 183},
	},
	taxonomy.CategoryFitness: {
		{"Ironworks CrossFit", "902 Depot St, Greenville, SC 29601", "(864) 555-0199", "", taxonomy.TypeCrossfitGym, 4.9, 174},
		{"Stillwater Yoga Studio", "21 Birch St, Eugene, OR 97401", "(541) 555-0131", "https://stillwateryoga.example.com", taxonomy.TypeYogaStudio, 4.8, 121},
	},
}

// sampleBusinesses returns the fallback set for a category, or a mixed
// cross-category set for unscoped requests.
func sampleBusinesses(category taxonomy.Category) []model.BusinessRecord {
	var seeds []sampleSeed
	if category == "" {
		for _, c := range taxonomy.Categories() {
			if s := sampleSeeds[c]; len(s) > 0 {
				seeds = append(seeds, s[0])
			}
		}
	} else {
		seeds = sampleSeeds[category]
	}

	records := make([]model.BusinessRecord, 0, len(seeds))
	for i, s := range seeds {
		cat, _ := taxonomy.TypeCategory(s.bType)
		records = append(records, model.BusinessRecord{
			ID:           sampleID(cat, i),
			Name:         s.name,
			Address:      s.address,
			Phone:        s.phone,
			Website:      s.website,
			BusinessType: s.bType,
			Category:     cat,
			DisplayName:  taxonomy.DisplayName(s.bType),
			Rating:       s.rating,
			ReviewCount:  s.reviewCount,
		})
	}
	return records
}

// sampleID builds a stable identifier so repeated fallback responses stay
// deduplicatable on the caller side.
func sampleID(c taxonomy.Category, i int) string {
	return "sample-" + string(c) + "-" + string(rune('a'+i))
}
