package dbschema

import (
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/domain/tokenusage"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database"
)

// The usage tables persist the domain structs directly; they are pure
// accounting rows with no entity behavior worth a conversion layer.
func init() {
	database.RegisterSchemaForAutoMigrate(tokenusage.TokenUsage{})
	database.RegisterSchemaForAutoMigrate(tokenusage.TokenUsageDaily{})
}
