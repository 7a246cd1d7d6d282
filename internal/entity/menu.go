package entity

import "time"

// 菜单类型：1-菜单/目录 2-tabs 3-按钮。tabs 仅用于导航，不挂接口权限。
const (
	MenuTypeDirectory = 1
	MenuTypeTab       = 2
	MenuTypeButton    = 3
)

// MenuRootParentID 顶级菜单的父节点哨兵值
const MenuRootParentID = 0

// DbMenu represents a navigational node that also scopes permission entries.
type DbMenu struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ParentID  uint      `gorm:"column:parent_id;index;not null;default:0" json:"parent_id"`
	Name      string    `gorm:"column:name;type:varchar(64);not null" json:"name"`
	Code      string    `gorm:"column:code;type:varchar(64)" json:"code"`
	Type      int       `gorm:"column:type;not null" json:"type"`
	OrderNum  int       `gorm:"column:order_num;not null;default:0" json:"order_num"`
}

func (DbMenu) TableName() string {
	return "sys_menu"
}

// DbMenuPerm 菜单下挂的接口权限条目，绑定该菜单的角色将继承它。
type DbMenuPerm struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	MenuID    uint   `gorm:"column:menu_id;index;not null" json:"menu_id"`
	APIURL    string `gorm:"column:api_url;type:varchar(255);not null" json:"api_url"`
	APIMethod string `gorm:"column:api_method;type:varchar(16);not null" json:"api_method"`
}

func (DbMenuPerm) TableName() string {
	return "sys_menu_perm"
}

// MenuPermInput 创建/替换菜单权限时的单条输入
type MenuPermInput struct {
	APIURL    string `json:"apiUrl" binding:"required"`
	APIMethod string `json:"apiMethod" binding:"required"`
}

type CreateMenuRequest struct {
	ParentID     uint            `json:"parentId"`
	Name         string          `json:"name" binding:"required"`
	Code         string          `json:"code"`
	Type         int             `json:"type" binding:"required"`
	OrderNum     int             `json:"orderNum"`
	MenuPermList []MenuPermInput `json:"menuPermList"`
}

type UpdateMenuRequest struct {
	ParentID *uint   `json:"parentId,omitempty"`
	Name     *string `json:"name,omitempty"`
	Code     *string `json:"code,omitempty"`
	Type     *int    `json:"type,omitempty"`
	OrderNum *int    `json:"orderNum,omitempty"`
}

type UpdateMenuPermsRequest struct {
	MenuID       uint            `json:"menuId" binding:"required"`
	MenuPermList []MenuPermInput `json:"menuPermList"`
}
