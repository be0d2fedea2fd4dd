package entity

// Block links one task to one freetime. The composite key makes the
// association a set: a task can hold the same freetime only once.
type Block struct {
	TaskID     int `gorm:"primaryKey"` // References: tasks(id)
	FreetimeID int `gorm:"primaryKey"` // References: freetimes(id)
}

func (Block) TableName() string {
	return "blocks"
}
