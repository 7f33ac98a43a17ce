package constants

const (
	ChatAssistantName = "MarIA"
	ChatProductName   = "MANA2"

	ChatErrorReply = "Lo siento, hubo un problema al procesar tu mensaje. Por favor, intenta nuevamente."

	ChatCacheKeyPrefix = "maria_chat_"
)

// ChatWelcomeSuggestions are offered with the first assistant message
var ChatWelcomeSuggestions = []string{
	"¿Qué platos me recomiendas?",
	"Buscar opciones saludables",
	"Información nutricional",
	"Restaurantes recomendados",
}

// ChatReplySuggestions are attached to every assistant reply
var ChatReplySuggestions = []string{
	"Más opciones",
	"Información nutricional",
	"Otros platos",
}

// ChatQuickActions are canned prompts shown in the chat widget
var ChatQuickActions = []string{
	"¿Qué platos me recomiendas para mi condición?",
	"Opciones bajas en sodio",
	"Platos bajos en calorías",
	"¿Qué restaurantes me recomiendas?",
}
