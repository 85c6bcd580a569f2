package algorithms

import (
	"testing"

	"recruit_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestProfileCompletion(t *testing.T) {
	cases := []struct {
		name    string
		profile *models.Profile
		want    int
	}{
		{"nil profile", nil, 0},
		{"empty", &models.Profile{}, 0},
		{"first name only", &models.Profile{FirstName: "Ana"}, 0},
		{"full name", &models.Profile{FirstName: "Ana", LastName: "Cruz"}, 20},
		{"name and phone", &models.Profile{FirstName: "Ana", LastName: "Cruz", Phone: "+63 900"}, 35},
		{"whitespace phone ignored", &models.Profile{Phone: "   "}, 0},
		{"nationality", &models.Profile{Nationality: "PH"}, 15},
		{"empty cv object", &models.Profile{AIGeneratedCV: datatypes.JSON(`{}`)}, 0},
		{"cv array is not a document", &models.Profile{AIGeneratedCV: datatypes.JSON(`["x"]`)}, 0},
		{"cv with summary", &models.Profile{AIGeneratedCV: datatypes.JSON(`{"summary":"welder"}`)}, 50},
		{"everything", &models.Profile{
			FirstName:     "Ana",
			LastName:      "Cruz",
			Phone:         "+63 900",
			Nationality:   "PH",
			AIGeneratedCV: datatypes.JSON(`{"skills":["welding"]}`),
		}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProfileCompletion(tc.profile)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestMissingProfileFields(t *testing.T) {
	assert.Equal(t, []string{"name", "phone", "nationality", "cv"}, MissingProfileFields(&models.Profile{}))
	assert.Equal(t, []string{"cv"}, MissingProfileFields(&models.Profile{
		FirstName: "Ana", LastName: "Cruz", Phone: "1", Nationality: "PH",
	}))
}
