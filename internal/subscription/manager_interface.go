package subscription

import "github.com/VitaminP8/bloggery/models"

type Manager interface {
	Subscribe(postID uint) (<-chan *models.Comment, func())
	Publish(postID uint, comment *models.Comment)
}
