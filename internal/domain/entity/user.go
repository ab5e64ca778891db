package entity

// UserState состояние пользователя в диалоге с ботом
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ждём снимок для оценки
	StateProcessing    UserState = "processing"     // Оцениваем и отправляем снимок
)

// User пользователь бота
type User struct {
	ID             int64       // Telegram User ID
	ChatID         int64       // Telegram Chat ID
	State          UserState   // Текущее состояние
	LastAssessment *Assessment // Оценка последнего присланного снимка
	Uploads        int         // Число успешных отправок
}

// NewUser создаёт пользователя в главном меню
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// RecordAssessment запоминает оценку и учитывает успешную отправку.
func (u *User) RecordAssessment(a *Assessment, uploaded bool) {
	u.LastAssessment = a
	if uploaded {
		u.Uploads++
	}
}
