package tetracull

// Camera represents an entry in a Scene's camera table: the projection settings of a viewpoint. The Camera looks down the -Z
// axis of the node that hosts it.
type Camera struct {
	Name        string
	Perspective bool    // If the Camera has a perspective projection. If not, it would be orthographic
	FieldOfView float32 // Vertical field of view in degrees for a perspective projection camera
	Near, Far   float32 // The near and far clipping plane. Near defaults to 0.1, Far to 100 (unless these settings are loaded from a camera in a GLTF file).
	OrthoScale  float32 // Half of the horizontal extent of an orthographic projection camera's view, in world units
}

// NewCamera returns a new perspective Camera with a 60 degree vertical field of view.
func NewCamera(name string) Camera {
	return Camera{
		Name:        name,
		Perspective: true,
		FieldOfView: 60,
		Near:        0.1,
		Far:         100,
		OrthoScale:  10,
	}
}

// Projection returns the Camera's projection matrix for a view with the aspect ratio (width / height) given.
func (camera Camera) Projection(aspect float32) Matrix4 {

	if camera.Perspective {
		return NewProjectionPerspective(camera.FieldOfView, camera.Near, camera.Far, aspect)
	}

	asr := 1 / aspect
	return NewProjectionOrthographic(camera.Near, camera.Far, camera.OrthoScale, -camera.OrthoScale, asr*camera.OrthoScale, -asr*camera.OrthoScale)

}

// ViewMatrix returns the view matrix for a Camera hosted by a node with the world matrix given.
func ViewMatrix(cameraWorld Matrix4) Matrix4 {

	camPos, _, camRot := cameraWorld.Decompose()
	camPos = camPos.Invert()
	transform := NewMatrix4Translate(camPos.X, camPos.Y, camPos.Z)

	// We invert the rotation because the Camera is looking down -Z
	transform = transform.Mult(camRot.Transposed())

	return transform

}

// ViewProjection returns the combined view-projection matrix for the Camera hosted by a node with the world matrix given.
// The result can be passed directly to NewFrustum().
func (camera Camera) ViewProjection(cameraWorld Matrix4, aspect float32) Matrix4 {
	return ViewMatrix(cameraWorld).Mult(camera.Projection(aspect))
}
