package Models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/AnmolGhill/Halo/ApiErrors"
)

type Conversation struct {
	ID        string        `gorm:"primaryKey;size:64" json:"id"`
	UID       string        `gorm:"index;size:128" json:"-"`
	Title     string        `gorm:"size:255" json:"title"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Messages  []ChatMessage `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

type ChatMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"index;size:64" json:"-"`
	Role           string    `gorm:"size:16" json:"role"`
	Content        string    `gorm:"type:text" json:"content"`
	CreatedAt      time.Time `json:"timestamp"`
}

// EnsureConversation returns the caller's conversation with the given id,
// creating it on first use. The title is taken from the opening message.
func EnsureConversation(uid, id, title string) (*Conversation, error) {
	var conversation Conversation
	err := DB.Where("id = ? AND uid = ?", id, uid).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if len(title) > 80 {
		title = title[:80]
	}
	conversation = Conversation{ID: id, UID: uid, Title: title}
	if err := DB.Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func AppendMessage(conversationID, role, content string) error {
	message := ChatMessage{ConversationID: conversationID, Role: role, Content: content}
	if err := DB.Create(&message).Error; err != nil {
		return err
	}
	// Touch the parent so listing orders by recent activity.
	return DB.Model(&Conversation{}).Where("id = ?", conversationID).
		Update("updated_at", time.Now()).Error
}

func GetConversationsByUID(uid string) ([]Conversation, error) {
	conversations := []Conversation{}
	err := DB.Where("uid = ?", uid).Order("updated_at desc").Find(&conversations).Error
	return conversations, err
}

// GetConversation fetches one conversation with its messages, scoped to the
// caller so one user can never read another's history.
func GetConversation(uid, id string) (*Conversation, error) {
	var conversation Conversation
	err := DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("chat_messages.created_at asc")
	}).Where("id = ? AND uid = ?", id, uid).First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ApiErrors.New(ApiErrors.NotFound, "Conversation not found")
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func DeleteConversation(uid, id string) error {
	result := DB.Where("id = ? AND uid = ?", id, uid).Delete(&Conversation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ApiErrors.New(ApiErrors.NotFound, "Conversation not found")
	}
	return DB.Where("conversation_id = ?", id).Delete(&ChatMessage{}).Error
}

// PruneConversationsBefore removes conversations idle since the cutoff,
// messages included. Used by the retention cron.
func PruneConversationsBefore(cutoff time.Time) (int64, error) {
	var stale []Conversation
	if err := DB.Where("updated_at < ?", cutoff).Find(&stale).Error; err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(stale))
	for _, conversation := range stale {
		ids = append(ids, conversation.ID)
	}
	if err := DB.Where("conversation_id IN ?", ids).Delete(&ChatMessage{}).Error; err != nil {
		return 0, err
	}
	result := DB.Where("id IN ?", ids).Delete(&Conversation{})
	return result.RowsAffected, result.Error
}

// DeleteUserHistory wipes everything stored for a uid. Called on account
// deletion.
func DeleteUserHistory(uid string) error {
	var conversations []Conversation
	if err := DB.Where("uid = ?", uid).Find(&conversations).Error; err != nil {
		return err
	}
	for _, conversation := range conversations {
		if err := DB.Where("conversation_id = ?", conversation.ID).Delete(&ChatMessage{}).Error; err != nil {
			return err
		}
	}
	if err := DB.Where("uid = ?", uid).Delete(&Conversation{}).Error; err != nil {
		return err
	}
	return DB.Where("uid = ?", uid).Delete(&SymptomRecord{}).Error
}
