package scenes

// SceneChanger switches the scene the game runs.
type SceneChanger interface {
	ChangeScene(scene interface{})
}
