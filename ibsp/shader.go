package ibsp

// Surface and contents bitflags recognized by the classifier, the
// standard Quake III set . Bits not listed here are
// ignored, not rejected.
const (
	contentSolid       uint32 = 0x1
	contentLava        uint32 = 0x8
	contentSlime       uint32 = 0x10
	contentWater       uint32 = 0x20
	contentFog         uint32 = 0x40
	contentPlayerClip  uint32 = 0x10000
	contentTranslucent uint32 = 0x20000000

	surfaceNoDraw  uint32 = 0x80
	surfaceNonSolid uint32 = 0x4000
)

const liquidContents = contentLava | contentSlime | contentWater | contentFog

// PathResolver is the collaborator surface the loader uses to decide
// whether a shader's texture can be resolved. The core
// never decodes the texture itself; texture decode is out of scope.
type PathResolver interface {
	Exists(name string) bool
}

// noResolver treats every texture as unresolved; used when the caller
// passes a nil resolver to Load.
type noResolver struct{}

func (noResolver) Exists(string) bool { return false }

// classifyShader derives the three booleans from the raw
// surface/contents bitflags and texture resolvability.
func classifyShader(name string, surface, contents uint32, resolver PathResolver) (render, transparent, solid bool, missingTexture bool) {
	render = true
	if name == "noshader" {
		render = false
	}
	if contents&liquidContents != 0 {
		render = false
	}

	nodraw := surface&surfaceNoDraw != 0
	if render && !nodraw {
		if !textureResolvable(name, resolver) {
			missingTexture = true
			render = false
		}
	}

	transparent = contents&contentTranslucent != 0

	solid = true
	if surface&surfaceNonSolid != 0 {
		solid = false
	}
	if contents&contentPlayerClip != 0 {
		solid = true
	}

	return render, transparent, solid, missingTexture
}

// textureResolvable tries "<name>.jpg" then "<name>.tga".
func textureResolvable(name string, resolver PathResolver) bool {
	if resolver == nil {
		resolver = noResolver{}
	}
	return resolver.Exists(name+".jpg") || resolver.Exists(name+".tga")
}
