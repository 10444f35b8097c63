package config

// 布局配置常量
// 本文件定义了球道俯视图的屏幕布局参数

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600
)

// Lane View Configuration (球道俯视图配置)
// 世界坐标：X 向右，Z 朝向投球者（球瓶在 Z 负方向），Y 朝上
// 屏幕坐标：俯视，世界 Z 越小越靠上
const (
	// LaneViewCenterX 世界 X=0 对应的屏幕X坐标
	LaneViewCenterX = 400.0

	// LaneViewTopZ 屏幕顶部对应的世界Z坐标（球瓶区后方）
	LaneViewTopZ = -23.0

	// LaneViewTopY 世界 LaneViewTopZ 对应的屏幕Y坐标
	LaneViewTopY = 90.0

	// LaneViewScaleX 世界X方向每单位对应的像素
	LaneViewScaleX = 60.0

	// LaneViewScaleZ 世界Z方向每单位对应的像素
	// 球道纵向被压缩显示，否则放不进一屏
	LaneViewScaleZ = 15.0
)

// HUD Configuration (界面配置)
const (
	// HUDMargin 文字距屏幕边缘的距离
	HUDMargin = 12

	// ResetButtonX 重置按钮左上角X坐标
	ResetButtonX = 680.0

	// ResetButtonY 重置按钮左上角Y坐标
	ResetButtonY = 12.0

	// ResetButtonWidth 重置按钮宽度
	ResetButtonWidth = 100.0

	// ResetButtonHeight 重置按钮高度
	ResetButtonHeight = 28.0
)

// WorldToScreen 把世界坐标 (x, z) 转换为俯视图屏幕坐标
func WorldToScreen(x, z float64) (float64, float64) {
	return LaneViewCenterX + x*LaneViewScaleX, LaneViewTopY + (z-LaneViewTopZ)*LaneViewScaleZ
}

// ScreenToWorld 把屏幕坐标转换为世界坐标 (x, z)
func ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - LaneViewCenterX) / LaneViewScaleX, (sy-LaneViewTopY)/LaneViewScaleZ + LaneViewTopZ
}

// InResetButton 判断屏幕坐标是否落在重置按钮内
func InResetButton(sx, sy float64) bool {
	return sx >= ResetButtonX && sx <= ResetButtonX+ResetButtonWidth &&
		sy >= ResetButtonY && sy <= ResetButtonY+ResetButtonHeight
}
