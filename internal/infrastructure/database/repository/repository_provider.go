package repository

import (
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/repository/conversationrepo"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/repository/creditrepo"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/repository/postrepo"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/repository/profilerepo"
	"github.com/razaq-yassine/LinkedInContentSaaS-sub000/internal/infrastructure/database/repository/tokenusagerepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	postrepo.NewPostGormRepository,
	conversationrepo.NewConversationGormRepository,
	tokenusagerepo.NewTokenUsageGormRepository,
	creditrepo.NewCreditGormRepository,
	profilerepo.NewProfileGormRepository,
)
