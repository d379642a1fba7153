package model

// Category groups transactions for reporting. Looked up by (Name, Kind) and
// created lazily the first time a name is used.
type Category struct {
	BaseModel
	Name  string          `gorm:"column:nome;type:varchar(100);not null;uniqueIndex:idx_categoria_nome_tipo" json:"name"`
	Kind  TransactionKind `gorm:"column:tipo;type:varchar(20);not null;uniqueIndex:idx_categoria_nome_tipo" json:"kind"`
	Color string          `gorm:"column:cor;type:varchar(7)" json:"color"`
}

func (Category) TableName() string {
	return "categorias_financeiras"
}

// CategoryPalette is the set of display colors assigned to new categories.
var CategoryPalette = []string{
	"#3B82F6", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#EC4899", "#14B8A6", "#F97316",
}
