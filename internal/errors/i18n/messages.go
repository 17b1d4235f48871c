package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeShareNotFound   = "SHARE_NOT_FOUND"
	CodeForbidden       = "FORBIDDEN"
	CodeNotMember       = "NOT_MEMBER"
	CodeGroupClosed     = "GROUP_CLOSED"
	CodeAmountMismatch  = "AMOUNT_MISMATCH"
	CodeAmountTooLow    = "AMOUNT_TOO_LOW"
	CodeEmptyGroup      = "EMPTY_GROUP"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeStorage         = "STORAGE"
	CodeUnknown         = "UNKNOWN"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeNotFound:        "{{if .Resource}}{{.Resource}} not found{{else}}Not found{{end}}",
		CodeShareNotFound:   "Participant is not part of this expense",
		CodeForbidden:       "{{if .Action}}You are not allowed to {{.Action}}{{else}}You are not allowed to perform this action{{end}}",
		CodeNotMember:       "You are not a member of this group",
		CodeGroupClosed:     "This group is closed",
		CodeAmountMismatch:  "Sum of participant amounts must equal the expense amount ({{.Expected}})",
		CodeAmountTooLow:    "The expense amount must not be less than the sum of participant amounts ({{.Allocated}})",
		CodeEmptyGroup:      "An expense needs at least one participant, including the payer",
		CodeInvalidArgument: "Invalid {{.Field}}: {{.Reason}}",
		CodeStorage:         "The ledger is temporarily unavailable, please retry",
		CodeUnknown:         "Something went wrong",
	},
}

var ruRUCatalog = &Catalog{
	locale: "ru-RU",
	messages: map[Code]string{
		CodeNotFound:        "{{if .Resource}}{{.Resource}}: не найдено{{else}}Не найдено{{end}}",
		CodeShareNotFound:   "Участник не входит в этот расход",
		CodeForbidden:       "Недостаточно прав для этого действия",
		CodeNotMember:       "Вы не являетесь участником этой группы",
		CodeGroupClosed:     "Эта группа закрыта",
		CodeAmountMismatch:  "Сумма долей участников должна совпадать с суммой расхода ({{.Expected}})",
		CodeAmountTooLow:    "Сумма расхода не может быть меньше суммы долей участников ({{.Allocated}})",
		CodeEmptyGroup:      "В расходе должен быть хотя бы один участник, включая плательщика",
		CodeInvalidArgument: "Некорректное поле {{.Field}}: {{.Reason}}",
		CodeStorage:         "Хранилище временно недоступно, повторите попытку",
		CodeUnknown:         "Что-то пошло не так",
	},
}
