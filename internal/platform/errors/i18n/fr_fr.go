package i18n

var frFRCatalog = &Catalog{
	locale: "fr-FR",
	messages: map[Code]string{
		CodeUnknown: "Une erreur inattendue est survenue",

		// Game definition errors
		CodeGameNameEmpty:           "Le nom est obligatoire",
		CodeGameInvalidWinCondition: "La condition de victoire doit être highest ou lowest",
		CodeGameInvalidLimit:        "Les limites doivent être nulles ou positives",

		// Player errors
		CodePlayerNameEmpty: "Le nom est obligatoire",

		// Session errors
		CodeSessionNotActive:         "Aucune partie en cours",
		CodeSessionEmptyRoster:       "Sélectionnez au moins un joueur !",
		CodeSessionDuplicatePlayer:   "Ce joueur est déjà dans la partie",
		CodeSessionPlayerNotInRoster: "Ce joueur n'est pas dans la partie",
		CodeSessionLastPlayer:        "Impossible de supprimer le dernier joueur de la partie",
		CodeSessionRosterMismatch:    "Le nouvel ordre doit contenir exactement les joueurs actuels",
		CodeSessionRoundOutOfRange:   "Le tour {{.Round}} n'existe pas",

		// Statistics errors
		CodeStatsNoPlayers: "Sélectionnez au moins un joueur...",

		// Storage errors
		CodeNotFound: "La ressource demandée est introuvable",
	},
}
