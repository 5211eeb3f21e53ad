package models

// FeedbackLink is one issued link. Rows are insert-only.
type FeedbackLink struct {
	ID                    int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CustomerServiceNumber string `gorm:"column:cust_sr_no;not null" json:"cust_sr_no"`
	CustomerMobileNumber  string `gorm:"column:cust_mob_no;not null" json:"cust_mob_no"`
	CustomerVehicleNumber string `gorm:"column:cust_veh_no;not null" json:"cust_veh_no"`
	FeedbackID            string `gorm:"column:feedback_id;not null" json:"feedback_id"`
	Link                  string `gorm:"column:link;not null" json:"link"`
	CreatedAt             string `gorm:"column:created_at;not null;autoCreateTime:false" json:"created_at"`
}

func (FeedbackLink) TableName() string {
	return "feedback_links"
}
