package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Like — отметка "нравится" на посте. Последовательность лайков работает как
// множество: один пользователь встречается в ней не более одного раза,
// новые отметки добавляются в начало.
type Like struct {
	UserID string `json:"userId"`
}

// Comment — комментарий, принадлежащий посту. Отдельного хранилища у
// комментариев нет: они живут и умирают вместе с родительским агрегатом.
// Имя и аватар автора — снимок профиля на момент создания.
type Comment struct {
	ID                string    `json:"id"`
	AuthorID          string    `json:"authorId"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	AuthorAvatarURL   string    `json:"authorAvatarUrl"`
	Text              string    `json:"text"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Post — корень агрегата. Лайки и комментарии встроены в сам агрегат и
// сохраняются вместе с ним одной записью (JSON-колонки в postgres),
// отдельных таблиц для них нет.
type Post struct {
	ID                string                       `json:"id" gorm:"type:uuid;primary_key"`
	AuthorID          string                       `json:"authorId" gorm:"type:varchar(255);not null"`
	AuthorDisplayName string                       `json:"authorDisplayName" gorm:"type:varchar(255)"`
	AuthorAvatarURL   string                       `json:"authorAvatarUrl" gorm:"type:varchar(512)"`
	Title             string                       `json:"title,omitempty" gorm:"type:varchar(255)"`
	Text              string                       `json:"text" gorm:"type:text;not null"`
	Likes             datatypes.JSONSlice[Like]    `json:"likes"`
	Comments          datatypes.JSONSlice[Comment] `json:"comments"`
	CreatedAt         time.Time                    `json:"createdAt" gorm:"not null"`
}

// Clone возвращает глубокую копию агрегата. Хранилища отдают и принимают
// копии, чтобы изменение агрегата в памяти не затрагивало сохраненное
// состояние до явного SavePost.
func (p *Post) Clone() *Post {
	cp := *p
	cp.Likes = make(datatypes.JSONSlice[Like], len(p.Likes))
	copy(cp.Likes, p.Likes)
	cp.Comments = make(datatypes.JSONSlice[Comment], len(p.Comments))
	copy(cp.Comments, p.Comments)
	return &cp
}

// Profile — снимок профиля пользователя, денормализуемый в пост или
// комментарий при создании. Последующие изменения профиля его не обновляют.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// User представляет зарегистрированного пользователя.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt-хэш, наружу не отдается
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
