package corpus

// EntityDate is the built-in entity resolved from relative date expressions.
const EntityDate = "date"

// DateLayout is how resolved dates are stored in entity options.
const DateLayout = "2006-01-02"

const DefaultTimezone = "UTC"

// Spreadsheet layout for xlsx imports.
const (
	SheetIntents  = "Intents"
	SheetAnswers  = "Answers"
	SheetEntities = "Entities"
)

// CSV row kinds.
const (
	KindUtterance = "utterance"
	KindAnswer    = "answer"
	KindEntity    = "entity"
)
